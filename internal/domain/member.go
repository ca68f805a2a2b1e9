package domain

import (
	"github.com/oapi-codegen/nullable"
)

// Member is the domain representation of a team member's profile.
type Member struct {
	ID MemberID

	Name      string
	Role      string
	About     string
	Instagram string
	// Image is either a remote URL or an embedded data: URL.
	Image string
	// DOB is a calendar date string; age is always derived from it (see DeriveAge).
	DOB string
	// Age is the value the roster was seeded with. It is kept for round-tripping roster
	// files and is never read: DeriveAge is the only source of a member's age.
	Age int
	// Password is the member's shared secret. It is compared as plaintext unless the
	// service runs with hashed passwords.
	Password string
}

// Field names a member attribute that can be edited through an edit buffer.
type Field string

const (
	FieldName      Field = "name"
	FieldRole      Field = "role"
	FieldAbout     Field = "about"
	FieldInstagram Field = "instagram"
	FieldImage     Field = "image"
	FieldDOB       Field = "dob"
	FieldPassword  Field = "password"
)

// EditableFields lists every field a MemberPatch can carry, in display order.
var EditableFields = []Field{FieldName, FieldRole, FieldAbout, FieldInstagram, FieldImage, FieldDOB, FieldPassword}

// ParseField validates a field name. "id" and "age" are deliberately not editable.
func ParseField(s string) (Field, bool) {
	for _, f := range EditableFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// MemberPatch is a partial set of member fields.
//
// Each field is tri-state: unspecified fields are left alone by Apply, null fields clear the
// stored value to "", and set fields overwrite it.
type MemberPatch struct {
	Name      nullable.Nullable[string]
	Role      nullable.Nullable[string]
	About     nullable.Nullable[string]
	Instagram nullable.Nullable[string]
	Image     nullable.Nullable[string]
	DOB       nullable.Nullable[string]
	Password  nullable.Nullable[string]
}

// PatchFromMember returns a patch that specifies every editable field of m.
func PatchFromMember(m Member) MemberPatch {
	var p MemberPatch
	for _, f := range EditableFields {
		p.Set(f, m.get(f))
	}
	return p
}

// Set overwrites one field of the patch. Set never mutates a map shared with another patch:
// nullable.Nullable.Set always installs a fresh value.
func (p *MemberPatch) Set(f Field, v string) {
	if dst := p.slot(f); dst != nil {
		dst.Set(v)
	}
}

// Unset makes one field unspecified again, so Apply leaves it alone.
func (p *MemberPatch) Unset(f Field) {
	if dst := p.slot(f); dst != nil {
		dst.SetUnspecified()
	}
}

// Value returns the field value carried by the patch. ok is false when the field is
// unspecified; a null field reports ("", true).
func (p MemberPatch) Value(f Field) (string, bool) {
	src := p.slot(f)
	if src == nil || !src.IsSpecified() {
		return "", false
	}
	if src.IsNull() {
		return "", true
	}
	return src.MustGet(), true
}

// IsEmpty reports whether no field is specified.
func (p MemberPatch) IsEmpty() bool {
	for _, f := range EditableFields {
		if _, ok := p.Value(f); ok {
			return false
		}
	}
	return true
}

// Merge returns a patch with the specified fields of other layered over p.
func (p MemberPatch) Merge(other MemberPatch) MemberPatch {
	out := p.Clone()
	for _, f := range EditableFields {
		src := other.slot(f)
		if src == nil || !src.IsSpecified() {
			continue
		}
		dst := out.slot(f)
		if src.IsNull() {
			dst.SetNull()
			continue
		}
		dst.Set(src.MustGet())
	}
	return out
}

// Clone returns a patch that shares no storage with p.
func (p MemberPatch) Clone() MemberPatch {
	var out MemberPatch
	for _, f := range EditableFields {
		src := p.slot(f)
		if !src.IsSpecified() {
			continue
		}
		dst := out.slot(f)
		if src.IsNull() {
			dst.SetNull()
			continue
		}
		dst.Set(src.MustGet())
	}
	return out
}

// Apply performs a shallow merge of p onto m: specified fields overwrite, unspecified fields
// keep their prior value. ID and Age are never touched.
func (p MemberPatch) Apply(m Member) Member {
	out := m
	for _, f := range EditableFields {
		if v, ok := p.Value(f); ok {
			out.set(f, v)
		}
	}
	return out
}

func (p *MemberPatch) slot(f Field) *nullable.Nullable[string] {
	switch f {
	case FieldName:
		return &p.Name
	case FieldRole:
		return &p.Role
	case FieldAbout:
		return &p.About
	case FieldInstagram:
		return &p.Instagram
	case FieldImage:
		return &p.Image
	case FieldDOB:
		return &p.DOB
	case FieldPassword:
		return &p.Password
	default:
		return nil
	}
}

func (m Member) get(f Field) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldRole:
		return m.Role
	case FieldAbout:
		return m.About
	case FieldInstagram:
		return m.Instagram
	case FieldImage:
		return m.Image
	case FieldDOB:
		return m.DOB
	case FieldPassword:
		return m.Password
	default:
		return ""
	}
}

func (m *Member) set(f Field, v string) {
	switch f {
	case FieldName:
		m.Name = v
	case FieldRole:
		m.Role = v
	case FieldAbout:
		m.About = v
	case FieldInstagram:
		m.Instagram = v
	case FieldImage:
		m.Image = v
	case FieldDOB:
		m.DOB = v
	case FieldPassword:
		m.Password = v
	}
}
