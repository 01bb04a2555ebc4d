package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
	"github.com/hongminglow/finance-tracker-be/internal/storage/memory"
)

func openerFor(store *memory.Store) opener {
	return func(context.Context) (storage.Store, error) { return store, nil }
}

func TestRun_CreatesStaffFromPipedPassword(t *testing.T) {
	store := memory.New()
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-user", "admin", "-email", "admin@example.com", "-staff"},
		strings.NewReader("s3cretpass\n"), &out, &errOut, openerFor(store))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "User admin created successfully")

	user, err := store.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cretpass"))
}

func TestRun_RejectsDuplicate(t *testing.T) {
	store := memory.New()
	args := []string{"-user", "ann", "-password", "longenough"}
	var out, errOut bytes.Buffer
	require.NoError(t, run(context.Background(), args, nil, &out, &errOut, openerFor(store)))

	err := run(context.Background(), args, nil, &out, &errOut, openerFor(store))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_RequiresUser(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(context.Background(), nil, nil, &out, &errOut, openerFor(memory.New()))
	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage: adduser")
}

func TestRun_ShortPassword(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"-user", "ann", "-password", "short"}, nil, &out, &errOut, openerFor(memory.New()))
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "password")
}
