package domain

import "time"

// VisitorType distinguishes who booked: a parent or a training company
type VisitorType string

const (
	VisitorParent  VisitorType = "parent"
	VisitorCompany VisitorType = "company"
)

// IsValid reports whether t is a known visitor type
func (t VisitorType) IsValid() bool {
	return t == VisitorParent || t == VisitorCompany
}

// VisitorInfo is the visitor identity snapshot carried by a booked slot and by
// a booking request. It is copied by value from the request onto the slot at
// assignment time; the duplication is intentional (the slot keeps the data the
// booking was made with even if the request row is later purged).
type VisitorInfo struct {
	Type               VisitorType
	ParentName         *string
	StudentName        *string
	CompanyName        *string
	TraineeName        *string
	RepresentativeName *string
	ClassName          string
	Email              string
	Message            *string
}

// Validate checks the type-specific required fields: parents book with
// parent + student names, companies with company + trainee + representative
// names. ClassName and Email are always required.
func (v VisitorInfo) Validate() error {
	if v.ClassName == "" || v.Email == "" {
		return ErrVisitorFieldsMissing
	}

	switch v.Type {
	case VisitorParent:
		if deref(v.ParentName) == "" || deref(v.StudentName) == "" {
			return ErrVisitorFieldsMissing
		}
	case VisitorCompany:
		if deref(v.CompanyName) == "" || deref(v.TraineeName) == "" || deref(v.RepresentativeName) == "" {
			return ErrVisitorFieldsMissing
		}
	default:
		return ErrInvalidVisitorType
	}
	return nil
}

// Normalized returns a copy with the unused name fields of the other visitor
// type nulled out, so a parent booking never carries stale company names and
// vice versa.
func (v VisitorInfo) Normalized() VisitorInfo {
	out := v
	if v.Type == VisitorParent {
		out.CompanyName = nil
		out.TraineeName = nil
		out.RepresentativeName = nil
	} else {
		out.ParentName = nil
		out.StudentName = nil
	}
	return out
}

// Verification tracks the email verification and notification timestamps of a
// booking or booking request.
type Verification struct {
	TokenHash          *string // SHA-256 hex of the emailed token; nil once used
	VerificationSentAt *time.Time
	VerifiedAt         *time.Time
	ConfirmationSentAt *time.Time
}

// IsVerified reports whether the visitor confirmed their email address
func (v Verification) IsVerified() bool {
	return v.VerifiedAt != nil
}

// IsExpiredAt reports whether the verification link has passed its TTL without
// being used. Already-verified entries never expire.
func (v Verification) IsExpiredAt(now time.Time, ttl time.Duration) bool {
	if v.VerifiedAt != nil || v.VerificationSentAt == nil {
		return false
	}
	return now.Sub(*v.VerificationSentAt) > ttl
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
