// Package permission answers whether an actor may perform an action on a site or
// project. Callers only consume the boolean.
package permission

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"soilsync/entities"
)

type Action string

const (
	EnterData                   Action = "ENTER_DATA"
	UpdateDepthInterval         Action = "UPDATE_DEPTH_INTERVAL"
	UpdateRequirements          Action = "UPDATE_REQUIREMENTS"
	ChangeRequiredDepthInterval Action = "CHANGE_REQUIRED_DEPTH_INTERVAL"
	ManageMembers               Action = "MANAGE_MEMBERS"
)

// Context names the object an action targets. Site wins over ProjectID.
type Context struct {
	Site      *entities.Site
	ProjectID string
}

type Checker interface {
	WithTx(tx *gorm.DB) Checker
	Check(actor string, action Action, c Context) (bool, error)
}

type rule struct {
	ownerOnUnaffiliated bool
	roles               []string
}

var rules = map[Action]rule{
	EnterData:                   {ownerOnUnaffiliated: true, roles: []string{entities.RoleManager, entities.RoleContributor}},
	UpdateDepthInterval:         {ownerOnUnaffiliated: true, roles: []string{entities.RoleManager, entities.RoleContributor}},
	UpdateRequirements:          {roles: []string{entities.RoleManager}},
	ChangeRequiredDepthInterval: {roles: []string{entities.RoleManager}},
	ManageMembers:               {roles: []string{entities.RoleManager}},
}

type tableChecker struct{ db *gorm.DB }

func New(db *gorm.DB) Checker { return &tableChecker{db: db} }

func (c *tableChecker) WithTx(tx *gorm.DB) Checker { return &tableChecker{db: tx} }

func (c *tableChecker) Check(actor string, action Action, ctx Context) (bool, error) {
	r, ok := rules[action]
	if !ok || actor == "" {
		return false, nil
	}

	projectID := ctx.ProjectID
	if ctx.Site != nil {
		if ctx.Site.ProjectID == nil {
			return r.ownerOnUnaffiliated && ctx.Site.OwnerID == actor, nil
		}
		projectID = *ctx.Site.ProjectID
	}
	if projectID == "" {
		return false, nil
	}

	var m entities.ProjectMembership
	err := c.db.Where("project_id = ? AND user_id = ?", projectID, actor).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load membership: %w", err)
	}
	for _, role := range r.roles {
		if m.Role == role {
			return true, nil
		}
	}
	return false, nil
}
