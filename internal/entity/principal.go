package entity

import (
	"github.com/google/uuid"
)

// Principal is the authenticated actor attached to every request by the
// JWT middleware: a tagged role plus identifier. The negotiation core
// trusts it and enforces only domain-level authorization on top.
type Principal struct {
	Id   uuid.UUID
	Role string // common.RoleBusinessOwner or common.RoleBuyer
	Name string // business name for owners, company name for buyers
}
