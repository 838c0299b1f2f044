// Package events defines the customer lifecycle events exchanged between the
// identity service and the financial-movement service.
//
// Events are a closed set: Decode returns one of *CustomerCreated,
// *CustomerModified, *CustomerDeleted or *Unknown, so consumers switch on the
// concrete type instead of comparing action strings.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/google/uuid"
)

// Action is the discriminator carried by every event on the wire.
type Action string

const (
	ActionCustomerCreated  Action = "CUSTOMER_CREATED"
	ActionCustomerModified Action = "CUSTOMER_MODIFIED"
	ActionCustomerDeleted  Action = "CUSTOMER_DELETED"
)

// ErrMalformedEvent is returned by Decode when the body is not an event.
var ErrMalformedEvent = errors.New("malformed event")

// Event is implemented by the event kinds of this package only.
type Event interface {
	ID() uuid.UUID
	Type() Action
	OccurredAt() time.Time
	sealed()
}

// Envelope is the metadata shared by every event. Fields are set once by the
// constructors and have no setters.
type Envelope struct {
	EventID   uuid.UUID `json:"eventId"`
	Action    Action    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

func newEnvelope(action Action) Envelope {
	return Envelope{
		EventID:   uuid.New(),
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
}

func (e Envelope) ID() uuid.UUID         { return e.EventID }
func (e Envelope) Type() Action          { return e.Action }
func (e Envelope) OccurredAt() time.Time { return e.CreatedAt }

// CustomerPayload is the full customer snapshot as serialized on the wire.
type CustomerPayload struct {
	CustomerID     string          `json:"customerId"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Identification string          `json:"identification"`
	Gender         customer.Gender `json:"gender"`
	Age            int             `json:"age"`
	Password       string          `json:"password"`
	CustomerStatus customer.Status `json:"customerStatus"`
	Address        string          `json:"address"`
	Email          string          `json:"email"`
}

// Snapshot converts the payload to the domain snapshot.
func (p CustomerPayload) Snapshot() customer.Snapshot {
	return customer.Snapshot{
		CustomerID:     p.CustomerID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Identification: p.Identification,
		Gender:         p.Gender,
		Age:            p.Age,
		Password:       p.Password,
		Status:         p.CustomerStatus,
		Address:        p.Address,
		Email:          p.Email,
	}
}

func payloadFrom(s customer.Snapshot) CustomerPayload {
	return CustomerPayload{
		CustomerID:     s.CustomerID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Identification: s.Identification,
		Gender:         s.Gender,
		Age:            s.Age,
		Password:       s.Password,
		CustomerStatus: s.Status,
		Address:        s.Address,
		Email:          s.Email,
	}
}

// CustomerCreated is published after a customer is registered.
type CustomerCreated struct {
	Envelope
	CustomerPayload
}

// CustomerModified is published after a customer is updated. It carries the
// whole snapshot, not a diff.
type CustomerModified struct {
	Envelope
	CustomerPayload
}

// CustomerDeleted is published after a customer is removed.
type CustomerDeleted struct {
	Envelope
	CustomerID string `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// Unknown is an event whose action this build does not understand. Raw keeps
// the body for logging.
type Unknown struct {
	Envelope
	Raw json.RawMessage `json:"-"`
}

func (*CustomerCreated) sealed()  {}
func (*CustomerModified) sealed() {}
func (*CustomerDeleted) sealed()  {}
func (*Unknown) sealed()          {}

// NewCustomerCreated builds a CustomerCreated event from s.
func NewCustomerCreated(s customer.Snapshot) *CustomerCreated {
	return &CustomerCreated{
		Envelope:        newEnvelope(ActionCustomerCreated),
		CustomerPayload: payloadFrom(s),
	}
}

// NewCustomerModified builds a CustomerModified event from s.
func NewCustomerModified(s customer.Snapshot) *CustomerModified {
	return &CustomerModified{
		Envelope:        newEnvelope(ActionCustomerModified),
		CustomerPayload: payloadFrom(s),
	}
}

// NewCustomerDeleted builds a CustomerDeleted event.
func NewCustomerDeleted(customerID, firstName, lastName string) *CustomerDeleted {
	return &CustomerDeleted{
		Envelope:   newEnvelope(ActionCustomerDeleted),
		CustomerID: customerID,
		FirstName:  firstName,
		LastName:   lastName,
	}
}

// Decode reads the action discriminator once and unmarshals data into the
// matching event kind. Unrecognized actions decode to *Unknown so producers
// can add kinds without breaking consumers.
func Decode(data []byte) (Event, error) {
	var head struct {
		Action Action `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if head.Action == "" {
		return nil, fmt.Errorf("%w: missing action", ErrMalformedEvent)
	}

	var evt Event
	switch head.Action {
	case ActionCustomerCreated:
		evt = &CustomerCreated{}
	case ActionCustomerModified:
		evt = &CustomerModified{}
	case ActionCustomerDeleted:
		evt = &CustomerDeleted{}
	default:
		u := &Unknown{Raw: append(json.RawMessage(nil), data...)}
		// The envelope is informational here; a bad id or timestamp must
		// not hide the action.
		_ = json.Unmarshal(data, &u.Envelope)
		u.Action = head.Action
		return u, nil
	}
	if err := json.Unmarshal(data, evt); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, head.Action, err)
	}
	return evt, nil
}

// Encode serializes evt in the flat wire format read by Decode.
func Encode(evt Event) ([]byte, error) {
	if u, ok := evt.(*Unknown); ok {
		return u.Raw, nil
	}
	return json.Marshal(evt)
}
