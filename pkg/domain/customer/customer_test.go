package customer

import (
	"testing"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() Snapshot {
	return Snapshot{
		CustomerID:     uuid.NewString(),
		FirstName:      "Marianela",
		LastName:       "Montalvo",
		Identification: "0912345678",
		Gender:         GenderFemale,
		Age:            29,
		Password:       "hash",
		Address:        "Amazonas y NNUU",
		Email:          "marianela@example.com",
	}
}

func TestNew(t *testing.T) {
	c, err := New(validSnapshot())
	require.NoError(t, err)
	assert.Equal(t, StatusActive, c.Status, "status defaults to ACTIVE")
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Marianela Montalvo", c.FullName())
}

func TestNew_Validation(t *testing.T) {
	tests := map[string]func(s *Snapshot){
		"customer id not an id":  func(s *Snapshot) { s.CustomerID = "abc" },
		"identification pattern": func(s *Snapshot) { s.Identification = "ab-1" },
		"short first name":       func(s *Snapshot) { s.FirstName = "M" },
		"missing last name":      func(s *Snapshot) { s.LastName = "" },
		"unknown gender":         func(s *Snapshot) { s.Gender = "N/A" },
		"age not positive":       func(s *Snapshot) { s.Age = 0 },
		"unknown status":         func(s *Snapshot) { s.Status = "GONE" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := validSnapshot()
			mutate(&s)
			_, err := New(s)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApplyOverwritesEverything(t *testing.T) {
	c := NewReplica("old-id")
	c.FirstName = "Stale"
	c.Email = "stale@example.com"

	s := validSnapshot()
	s.Email = ""
	c.Apply(s)

	assert.Equal(t, s, c.Snapshot())
	assert.Empty(t, c.Email, "empty values also win")
}
