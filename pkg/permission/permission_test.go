package permission

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"soilsync/database"
	"soilsync/entities"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func TestUnaffiliatedSiteOwnerOnly(t *testing.T) {
	c := New(openDB(t))
	site := &entities.Site{ID: "s1", OwnerID: "alice"}

	for _, a := range []Action{EnterData, UpdateDepthInterval} {
		ok, err := c.Check("alice", a, Context{Site: site})
		require.NoError(t, err)
		assert.True(t, ok, a)

		ok, err = c.Check("bob", a, Context{Site: site})
		require.NoError(t, err)
		assert.False(t, ok, a)
	}

	ok, err := c.Check("alice", UpdateRequirements, Context{Site: site})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectRoles(t *testing.T) {
	db := openDB(t)
	p := entities.Project{Name: "p"}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&[]entities.ProjectMembership{
		{ProjectID: p.ID, UserID: "manager", Role: entities.RoleManager},
		{ProjectID: p.ID, UserID: "contrib", Role: entities.RoleContributor},
		{ProjectID: p.ID, UserID: "viewer", Role: entities.RoleViewer},
	}).Error)
	site := &entities.Site{ID: "s1", OwnerID: "outsider", ProjectID: &p.ID}
	c := New(db)

	cases := []struct {
		actor  string
		action Action
		ctx    Context
		want   bool
	}{
		{"manager", EnterData, Context{Site: site}, true},
		{"contrib", EnterData, Context{Site: site}, true},
		{"contrib", UpdateDepthInterval, Context{Site: site}, true},
		{"viewer", EnterData, Context{Site: site}, false},
		{"outsider", EnterData, Context{Site: site}, false},
		{"manager", UpdateRequirements, Context{ProjectID: p.ID}, true},
		{"contrib", UpdateRequirements, Context{ProjectID: p.ID}, false},
		{"manager", ChangeRequiredDepthInterval, Context{ProjectID: p.ID}, true},
		{"contrib", ManageMembers, Context{ProjectID: p.ID}, false},
		{"", EnterData, Context{Site: site}, false},
		{"manager", Action("DELETE_EVERYTHING"), Context{ProjectID: p.ID}, false},
	}
	for _, tc := range cases {
		ok, err := c.Check(tc.actor, tc.action, tc.ctx)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "%s %s", tc.actor, tc.action)
	}
}
