package security

// In-memory API client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"storefront": {
		ID:      "storefront",
		Secret:  "storefront-secret",
		Perms:   []string{"orders.read", "orders.write", "members.read", "members.write", "items.read"},
		Enabled: true,
	},
	"svc-admin": {
		ID:      "svc-admin",
		Secret:  "admin-secret",
		Perms:   []string{"orders.read", "orders.write", "members.read", "members.write", "items.read", "items.write"},
		Enabled: true,
	},
	"svc-analytics": {
		ID:      "svc-analytics",
		Secret:  "ana-secret",
		Perms:   []string{"orders.read"},
		Enabled: true,
	},
}
