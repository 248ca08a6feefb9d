package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
)

func TestCheckAccessCode(t *testing.T) {
	a := &Auction{AccessCode: "K3Y9QZ2M"}

	assert.NoError(t, a.CheckAccessCode("K3Y9QZ2M"))
	for name, code := range map[string]string{
		"empty":          "",
		"same length":    "K3Y9QZ2N",
		"prefix":         "K3Y9",
		"longer":         "K3Y9QZ2MX",
		"different case": "k3y9qz2m",
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, dErrors.HasCode(a.CheckAccessCode(code), dErrors.CodeForbidden))
		})
	}

	t.Run("auction without a code never opens", func(t *testing.T) {
		assert.Error(t, (&Auction{}).CheckAccessCode(""))
	})
}

func TestAuctionTransitions(t *testing.T) {
	a := &Auction{Status: AuctionDraft, AccessCode: "K3Y9QZ2M"}
	require.NoError(t, a.Editable())
	assert.True(t, dErrors.HasCode(a.End("K3Y9QZ2M"), dErrors.CodeInvariantViolation))

	require.NoError(t, a.Start("K3Y9QZ2M"))
	assert.Equal(t, AuctionLive, a.Status)
	assert.True(t, dErrors.HasCode(a.Editable(), dErrors.CodeInvariantViolation))

	require.NoError(t, a.End("K3Y9QZ2M"))
	assert.Equal(t, AuctionCompleted, a.Status)
}

func TestRedacted(t *testing.T) {
	a := &Auction{ID: 7, AccessCode: "K3Y9QZ2M", AuthorizedManagers: []id.UserID{}}
	r := a.Redacted()
	assert.Empty(t, r.AccessCode)
	assert.Equal(t, "K3Y9QZ2M", a.AccessCode)
}
