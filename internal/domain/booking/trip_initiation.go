package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// DocumentKind tags a customer document captured at trip initiation.
type DocumentKind string

const (
	DocLicenseFront  DocumentKind = "license_front"
	DocLicenseBack   DocumentKind = "license_back"
	DocIDProofFront  DocumentKind = "id_proof_front"
	DocIDProofBack   DocumentKind = "id_proof_back"
	DocCustomerPhoto DocumentKind = "customer_photo"
	DocSignature     DocumentKind = "signature"
)

// IsValid returns true if the kind is recognized.
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocLicenseFront, DocLicenseBack, DocIDProofFront, DocIDProofBack, DocCustomerPhoto, DocSignature:
		return true
	}
	return false
}

// DocumentRecord is one captured document of a known kind.
type DocumentRecord struct {
	Kind    DocumentKind `json:"kind"`
	FileURL string       `json:"file_url"`
}

// CustomerSnapshot captures the renter's identity at handover time, so later
// profile edits do not rewrite rental paperwork.
type CustomerSnapshot struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	LicenseNumber    string `json:"license_number"`
	Address          string `json:"address"`
	EmergencyName    string `json:"emergency_name"`
	EmergencyContact string `json:"emergency_contact"`
}

// TripInitiation records the vehicle handover that moves a booking from
// confirmed to initiated. One per booking.
type TripInitiation struct {
	ID                 uuid.UUID        `json:"id"`
	BookingID          uuid.UUID        `json:"booking_id"`
	Customer           CustomerSnapshot `json:"customer"`
	VehicleNumber      string           `json:"vehicle_number"`
	Documents          []DocumentRecord `json:"documents"`
	ChecklistCompleted bool             `json:"checklist_completed"`
	TermsAccepted      bool             `json:"terms_accepted"`
	Notes              string           `json:"notes"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewTripInitiation validates the handover details and builds the record.
func NewTripInitiation(
	bookingID uuid.UUID,
	customer CustomerSnapshot,
	vehicleNumber string,
	documents []DocumentRecord,
	checklistCompleted, termsAccepted bool,
	notes string,
) (*TripInitiation, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if customer.Name == "" {
		return nil, domain.NewValidationError("customer name is required")
	}
	if customer.Phone == "" {
		return nil, domain.NewValidationError("customer phone is required")
	}
	if !termsAccepted {
		return nil, domain.NewValidationError("rental terms must be accepted before handover")
	}
	for _, doc := range documents {
		if !doc.Kind.IsValid() {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown document kind: %s", doc.Kind))
		}
		if doc.FileURL == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("document %s has no file URL", doc.Kind))
		}
	}

	now := time.Now().UTC()
	return &TripInitiation{
		ID:                 uuid.New(),
		BookingID:          bookingID,
		Customer:           customer,
		VehicleNumber:      vehicleNumber,
		Documents:          documents,
		ChecklistCompleted: checklistCompleted,
		TermsAccepted:      termsAccepted,
		Notes:              notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}
