package domain

import "time"

// SessionStatus enumerates the authentication states of the running client.
type SessionStatus string

const (
	StatusAnonymous      SessionStatus = "anonymous"
	StatusAuthenticating SessionStatus = "authenticating"
	StatusAuthenticated  SessionStatus = "authenticated"
	// StatusInvalid only ever appears transiently while a restored token is
	// being discarded; it always folds back into StatusAnonymous.
	StatusInvalid SessionStatus = "invalid"
)

// SearchSystem selects which code system a search runs against.
type SearchSystem string

const (
	SearchNamaste SearchSystem = "namaste"
	SearchICD     SearchSystem = "icd"
)

// TranslateSystem selects the source system of a translation request.
type TranslateSystem string

const (
	SystemNAM TranslateSystem = "NAM"
	SystemTM2 TranslateSystem = "TM2"
)

// UserProfile is the ABHA account holder's demographic record. It is
// immutable once fetched and replaced wholesale on each successful fetch.
type UserProfile struct {
	ABHAID    string `json:"abha_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// LoginResult is the backend's answer to a credential exchange. User and
// AccessToken are both optional on the wire; the session manager rejects
// responses missing either.
type LoginResult struct {
	Message     string       `json:"message"`
	User        *UserProfile `json:"abha_user,omitempty"`
	AccessToken string       `json:"access_token,omitempty"`
}

// CodeSystemConcept is one coded term returned by a search.
type CodeSystemConcept struct {
	Code       string `json:"code"`
	Display    string `json:"display"`
	Definition string `json:"definition,omitempty"`
}

// ConceptMapMapping is one translation result linking a source code to a
// target code plus SNOMED CT and LOINC cross-references.
type ConceptMapMapping struct {
	SourceCode   string `json:"source_code"`
	TargetCode   string `json:"target_code"`
	Relationship string `json:"relationship"`
	SnomedCTCode string `json:"snomed_ct_code"`
	LoincCode    string `json:"loinc_code"`
}

// TranslationHistoryEntry is one past translation performed by the current
// user, most-recent-first as returned by the backend. Never mutated
// client-side.
type TranslationHistoryEntry struct {
	ID           int64     `json:"id"`
	ABHAID       string    `json:"abha_id"`
	SourceSystem string    `json:"source_system"`
	SourceCode   string    `json:"source_code"`
	TargetSystem string    `json:"target_system"`
	TargetCode   string    `json:"target_code"`
	SnomedCTCode string    `json:"snomed_ct_code"`
	LoincCode    string    `json:"loinc_code"`
	Timestamp    time.Time `json:"timestamp"`
}

// TranslationRecord is the payload for explicitly saving one translation to
// the user's history.
type TranslationRecord struct {
	SourceSystem string `json:"source_system"`
	SourceCode   string `json:"source_code"`
	TargetSystem string `json:"target_system"`
	TargetCode   string `json:"target_code"`
	SnomedCTCode string `json:"snomed_ct_code"`
	LoincCode    string `json:"loinc_code"`
}
