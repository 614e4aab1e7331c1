package usecase

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
)

type RegisterMemberInput struct {
	Name    string
	Address domain.Address
}

type RegisterMember struct {
	members MemberRepo
}

func NewRegisterMember(members MemberRepo) *RegisterMember {
	return &RegisterMember{members: members}
}

// Execute rejects a name already taken. The members table also carries a
// unique index on name, so a racing registration still fails on Save.
func (uc *RegisterMember) Execute(ctx context.Context, in RegisterMemberInput) (string, error) {
	_, err := uc.members.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return "", fmt.Errorf("member name %q: %w", in.Name, domain.ErrDuplicate)
	case !errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("check member name: %w", err)
	}

	m, err := domain.NewMember(in.Name, in.Address)
	if err != nil {
		return "", err
	}
	if err := uc.members.Save(ctx, m); err != nil {
		return "", fmt.Errorf("save member: %w", err)
	}
	return m.ID, nil
}
