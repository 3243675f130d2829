// Package policy decides which principals may perform which actions and
// narrows queries to the rows a principal is allowed to see.
package policy

import (
	"errors"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindProject      Kind = "Project"
	KindTask         Kind = "Task"
	KindAsset        Kind = "AssetLink"
	KindComment      Kind = "TaskComment"
	KindNotification Kind = "Notification"
	KindActivityLog  Kind = "ActivityLog"
	KindUser         Kind = "User"
)

// Principal is the authenticated caller. Role is fixed for the lifetime of a request.
type Principal struct {
	UserID   uuid.UUID  `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

func (p *Principal) Is(roles ...model.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type rule struct {
	kind   Kind
	action Action
}

var (
	everyone   = []model.Role{model.RoleAdmin, model.RoleCEO, model.RolePM, model.RoleDeveloper}
	adminOrPM  = []model.Role{model.RoleAdmin, model.RolePM}
	adminsOnly = []model.Role{model.RoleAdmin}
)

// table lists the roles allowed per (kind, action). Missing entries deny.
// Task update is open to every role so developers can move their own tasks;
// row scoping still limits which tasks they can reach.
var table = map[rule][]model.Role{
	{KindProject, ActionRead}:   everyone,
	{KindProject, ActionCreate}: adminOrPM,
	{KindProject, ActionUpdate}: adminOrPM,
	{KindProject, ActionDelete}: adminsOnly,

	{KindTask, ActionRead}:   everyone,
	{KindTask, ActionCreate}: adminOrPM,
	{KindTask, ActionUpdate}: everyone,
	{KindTask, ActionDelete}: adminOrPM,

	{KindAsset, ActionRead}:   everyone,
	{KindAsset, ActionCreate}: everyone,
	{KindAsset, ActionUpdate}: everyone,
	{KindAsset, ActionDelete}: everyone,

	{KindComment, ActionRead}:   everyone,
	{KindComment, ActionCreate}: everyone,
	{KindComment, ActionUpdate}: everyone,
	{KindComment, ActionDelete}: everyone,

	// ownership is enforced by the row scope, never by role
	{KindNotification, ActionRead}:   everyone,
	{KindNotification, ActionUpdate}: everyone,
	{KindNotification, ActionDelete}: everyone,

	{KindActivityLog, ActionRead}: everyone,

	{KindUser, ActionRead}:   everyone,
	{KindUser, ActionCreate}: adminsOnly,
	{KindUser, ActionUpdate}: adminsOnly,
	{KindUser, ActionDelete}: adminsOnly,
}

// Can reports whether the principal's role may perform action on kind.
func Can(p *Principal, action Action, kind Kind) bool {
	if p == nil {
		return false
	}
	return p.Is(table[rule{kind, action}]...)
}

// Authorize is Can expressed as an error: ErrUnauthorized without a principal,
// ErrForbidden when the table denies.
func Authorize(p *Principal, action Action, kind Kind) error {
	if p == nil || p.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if !Can(p, action, kind) {
		return ErrForbidden
	}
	return nil
}
