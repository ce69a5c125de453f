package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlakyPort_SaveFailureToggles(t *testing.T) {
	ctx := context.Background()
	p := NewFlakyPort(Records(1)...)

	p.FailSave(true)
	err := p.Save(ctx, Records(3))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Len(t, p.Saved(), 1, "failed save must not change the slot")

	p.FailSave(false)
	require.NoError(t, p.Save(ctx, Records(3)))
	assert.Len(t, p.Saved(), 3)
	assert.Equal(t, 1, p.Saves())
	assert.Equal(t, 2, p.Attempts())
}

func TestFlakyPort_LoadFailure(t *testing.T) {
	p := NewFlakyPort(Records(2)...)
	p.FailLoad(true)

	_, err := p.Load(context.Background())
	assert.ErrorIs(t, err, ErrInjected)

	p.FailLoad(false)
	recs, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"100000001", "100000002"}, IDs(recs))
}

func TestMustRecord(t *testing.T) {
	r := MustRecord(t, " 123456789 ", " Maria ", " CS ")
	assert.Equal(t, "123456789", r.ID)
	assert.Equal(t, "Maria", r.Name)
	assert.Equal(t, "CS", r.Department)
}

func TestRecords_AreValid(t *testing.T) {
	for _, r := range Records(20) {
		assert.NoError(t, r.Validate())
	}
}
