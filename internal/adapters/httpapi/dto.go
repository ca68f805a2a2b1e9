package httpapi

import (
	"github.com/oapi-codegen/nullable"

	"github.com/edta-team/portfolio/internal/app/portfolio"
	"github.com/edta-team/portfolio/internal/domain"
)

// editBufferJSON mirrors domain.MemberPatch field for field so the two convert directly.
// Omitted keys are unspecified, null clears a field, a string sets it.
type editBufferJSON struct {
	Name      nullable.Nullable[string] `json:"name,omitempty"`
	Role      nullable.Nullable[string] `json:"role,omitempty"`
	About     nullable.Nullable[string] `json:"about,omitempty"`
	Instagram nullable.Nullable[string] `json:"instagram,omitempty"`
	Image     nullable.Nullable[string] `json:"image,omitempty"`
	DOB       nullable.Nullable[string] `json:"dob,omitempty"`
	Password  nullable.Nullable[string] `json:"password,omitempty"`
}

type loginJSON struct {
	Open     bool   `json:"open"`
	Error    string `json:"error,omitempty"`
	TargetID int    `json:"targetId"`
}

type stateJSON struct {
	View                 string          `json:"view"`
	SelectedMemberID     *int            `json:"selectedMemberId"`
	IsAdminAuthenticated bool            `json:"isAdminAuthenticated"`
	IsEditing            bool            `json:"isEditing"`
	EditSessionID        string          `json:"editSessionId,omitempty"`
	EditBuffer           *editBufferJSON `json:"editBuffer,omitempty"`
	Login                loginJSON       `json:"login"`
}

type memberCardJSON struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type profileJSON struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	About           string `json:"about"`
	AboutHTML       string `json:"aboutHtml"`
	Instagram       string `json:"instagram"`
	InstagramHandle string `json:"instagramHandle"`
	Image           string `json:"image"`
	DisplayImage    string `json:"displayImage"`
	DOB             string `json:"dob"`
	Age             *int   `json:"age"`
	AgeDisplay      string `json:"ageDisplay"`
}

type uploadJSON struct {
	Outcome       string `json:"outcome"`
	EditSessionID string `json:"editSessionId"`
}

type snapshotJSON struct {
	State   stateJSON        `json:"state"`
	Team    []memberCardJSON `json:"team"`
	Profile *profileJSON     `json:"profile,omitempty"`
	Upload  *uploadJSON      `json:"upload,omitempty"`
}

type selectMemberRequest struct {
	MemberID int `json:"memberId"`
}

type loginRequest struct {
	MemberID int    `json:"memberId"`
	Password string `json:"password"`
}

type editFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func toStateJSON(st portfolio.State) stateJSON {
	out := stateJSON{
		View:                 string(st.View),
		IsAdminAuthenticated: st.IsAdminAuthenticated,
		IsEditing:            st.IsEditing,
		EditSessionID:        string(st.EditSessionID),
		Login: loginJSON{
			Open:     st.Login.Open,
			Error:    st.Login.Error,
			TargetID: int(st.Login.TargetID),
		},
	}
	if st.SelectedMemberID != nil {
		id := int(*st.SelectedMemberID)
		out.SelectedMemberID = &id
	}
	if st.EditBuffer != nil {
		buf := editBufferJSON(st.EditBuffer.Clone())
		out.EditBuffer = &buf
	}
	return out
}

func toMemberCardsJSON(cards []portfolio.MemberCard) []memberCardJSON {
	out := make([]memberCardJSON, 0, len(cards))
	for _, c := range cards {
		out = append(out, memberCardJSON{ID: int(c.ID), Name: c.Name, Role: c.Role, Image: c.Image})
	}
	return out
}

func toProfileJSON(v portfolio.ProfileView) profileJSON {
	return profileJSON{
		ID:              int(v.ID),
		Name:            v.Name,
		Role:            v.Role,
		About:           v.About,
		AboutHTML:       v.AboutHTML,
		Instagram:       v.Instagram,
		InstagramHandle: v.InstagramHandle,
		Image:           v.Image,
		DisplayImage:    v.DisplayImage,
		DOB:             v.DOB,
		Age:             v.Age,
		AgeDisplay:      v.AgeDisplay,
	}
}

func toSnapshotJSON(s portfolio.Snapshot) snapshotJSON {
	out := snapshotJSON{
		State: toStateJSON(s.State),
		Team:  toMemberCardsJSON(s.Team),
	}
	if s.Profile != nil {
		p := toProfileJSON(*s.Profile)
		out.Profile = &p
	}
	return out
}

func (b editBufferJSON) toPatch() domain.MemberPatch {
	return domain.MemberPatch(b).Clone()
}
