package domain

import (
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Géneros admitidos en filterByGender.
const (
	GenderFemale = "F"
	GenderMale   = "M"
	GenderOther  = "O"
)

// Client representa un socio del gimnasio.
type Client struct {
	ID               int64      `json:"id"`
	Names            string     `json:"names"`
	LastNames        string     `json:"lastNames"`
	IDNumber         string     `json:"idNumber"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Gender           string     `json:"gender"`
	BirthDate        time.Time  `json:"birthDate"`
	MembershipEndsAt *time.Time `json:"membershipEndsAt"`
	CreatedBy        int64      `json:"createdBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"deletedAt"`
}

func (c *Client) PartitionKey() string {
	return strconv.FormatInt(c.ID, 10)
}

// FullName une nombres y apellidos.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.Names + " " + c.LastNames)
}

// MembershipActive indica si la membresía sigue vigente en now.
func (c *Client) MembershipActive(now time.Time) bool {
	return c.MembershipEndsAt != nil && !c.MembershipEndsAt.Before(now)
}

// Validate comprueba los campos obligatorios.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Names) == "" || strings.TrimSpace(c.LastNames) == "" {
		return ErrInvalidClient
	}
	if strings.TrimSpace(c.IDNumber) == "" {
		return ErrInvalidClient
	}
	switch c.Gender {
	case GenderFemale, GenderMale, GenderOther:
	default:
		return ErrInvalidClient
	}
	return nil
}

var _ sharedBus.Keyer = (*Client)(nil)
