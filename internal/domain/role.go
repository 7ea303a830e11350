package domain

// Role names match the JWT role claim issued by the host application.
const (
	RoleSales      = "sales"
	RoleStockist   = "stockist"
	RoleBuyerAgent = "buyer-agent"
	RoleSupplier   = "supplier"

	// RoleAll is an audience wildcard, never a reader role.
	RoleAll = "all"

	// RoleSystem marks internal callers (reminder sweeps, retention jobs).
	RoleSystem = "system"
)

// SystemIdentity is the actor recorded on derived (engine-generated) events.
const SystemIdentity = "system"

// ReaderRoles lists every role a feed can be requested for.
var ReaderRoles = []string{RoleSales, RoleStockist, RoleBuyerAgent, RoleSupplier}

// Reader identifies a feed consumer. Tenant is the resolved supplier name for
// supplier-role readers and empty for everyone else.
type Reader struct {
	Identity string
	Role     string
	Tenant   string
}
