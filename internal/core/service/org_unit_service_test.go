package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/infrastructure/db/memory"
)

func str(s string) *string { return &s }

func newOrgUnitService() *OrgUnitService {
	return NewOrgUnitService(memory.NewOrgUnitRepository(), validation.New(), zerolog.Nop())
}

func departmentInput() ports.OrgUnitInput {
	return ports.OrgUnitInput{
		Title:    str(" Accounts "),
		CityID:   str("city-1"),
		BranchID: str("branch-1"),
		Contact:  str("04211112222"),
		Email:    str("Accounts@Example.com"),
	}
}

func TestOrgUnitService_CreateValidatesAndTrims(t *testing.T) {
	svc := newOrgUnitService()
	ctx := context.Background()

	u, err := svc.Create(ctx, domain.OrgDepartment, departmentInput(), "EMP-000001")
	require.NoError(t, err)
	assert.Equal(t, "Accounts", u.Title)
	assert.Equal(t, "accounts@example.com", u.Email)
	assert.Equal(t, "EMP-000001", u.CreatedBy)
	assert.Empty(t, u.Updates)

	in := departmentInput()
	in.BranchID = nil
	in.Contact = str("123")
	_, err = svc.Create(ctx, domain.OrgDepartment, in, "EMP-000001")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "branch is required")
	assert.Contains(t, ve.Message, "contact must contain exactly 11 digits")

	_, err = svc.Create(ctx, domain.OrgCity, ports.OrgUnitInput{Title: str("Lh"), Country: str("Pakistan")}, "")
	require.ErrorAs(t, err, &ve)

	_, err = svc.Create(ctx, domain.OrgKind("campus"), departmentInput(), "")
	require.ErrorAs(t, err, &ve)
}

func TestOrgUnitService_UpdateRecordsHistory(t *testing.T) {
	svc := newOrgUnitService()
	ctx := context.Background()

	u, err := svc.Create(ctx, domain.OrgDepartment, departmentInput(), "EMP-000001")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.OrgDepartment, u.ID, ports.OrgUnitInput{Title: str("Finance")}, "EMP-000002")
	require.NoError(t, err)
	assert.Equal(t, "Finance", updated.Title)
	assert.Equal(t, "branch-1", updated.BranchID, "untouched fields survive")
	assert.Equal(t, "EMP-000001", updated.CreatedBy)
	require.Len(t, updated.Updates, 1)
	assert.Equal(t, "EMP-000002", updated.Updates[0].By)

	// A merged result that breaks the schema is rejected and nothing changes.
	_, err = svc.Update(ctx, domain.OrgDepartment, u.ID, ports.OrgUnitInput{BranchID: str("")}, "EMP-000002")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	stored, err := svc.Get(ctx, domain.OrgDepartment, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "branch-1", stored.BranchID)
	assert.Len(t, stored.Updates, 1)

	_, err = svc.Update(ctx, domain.OrgDepartment, "missing", ports.OrgUnitInput{}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrgUnitService_CountAndDelete(t *testing.T) {
	svc := newOrgUnitService()
	ctx := context.Background()

	for _, name := range []string{"Lahore", "Karachi"} {
		_, err := svc.Create(ctx, domain.OrgCity, ports.OrgUnitInput{Title: str(name), Country: str("Pakistan")}, "")
		require.NoError(t, err)
	}

	n, err := svc.Count(ctx, domain.OrgCity)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	cities, err := svc.List(ctx, domain.OrgCity)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	_, err = svc.Delete(ctx, domain.OrgCity, cities[0].ID)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, domain.OrgCity, cities[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err = svc.Count(ctx, domain.OrgCity)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
