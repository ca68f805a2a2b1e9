package domain

import "strconv"

// MemberID is the identity key of a roster record. It is assigned when the roster is seeded
// and never changes afterwards.
type MemberID int

func (id MemberID) String() string { return strconv.Itoa(int(id)) }

// ParseMemberID parses the decimal form used in URLs and form values.
func ParseMemberID(s string) (MemberID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return MemberID(n), nil
}
