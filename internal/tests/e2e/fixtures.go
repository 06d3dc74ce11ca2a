package e2e

import "github.com/you/termbridge/domain"

// Fixture credentials shared by the e2e tests.
const (
	FixtureABHAID = "ABHA001"
	FixturePhone  = "9876543210"
)

func seedFixtures(ts *TestServer) {
	ts.users[FixtureABHAID] = domain.UserProfile{
		ABHAID:    FixtureABHAID,
		Name:      "Asha Rao",
		Email:     "asha.rao@example.com",
		Phone:     FixturePhone,
		DOB:       "1985-04-12",
		Gender:    "F",
		Address:   "12 MG Road, Bengaluru",
		CreatedAt: "2023-01-15T09:30:00Z",
	}
	ts.users["ABHA002"] = domain.UserProfile{
		ABHAID:    "ABHA002",
		Name:      "Vikram Shah",
		Email:     "vikram.shah@example.com",
		Phone:     "9811122233",
		DOB:       "1978-11-02",
		Gender:    "M",
		Address:   "44 Marine Drive, Mumbai",
		CreatedAt: "2023-03-22T14:05:00Z",
	}

	ts.namaste = []domain.CodeSystemConcept{
		{Code: "NAM001", Display: "Jwara (Fever)", Definition: "Elevated body temperature with systemic disturbance"},
		{Code: "NAM002", Display: "Kasa (Cough)", Definition: "Forceful expulsion of air from the lungs"},
		{Code: "NAM003", Display: "Atisara (Diarrhea)"},
	}
	ts.icd = []domain.CodeSystemConcept{
		{Code: "TM2-AA10", Display: "Fever disorder (TM2)"},
		{Code: "TM2-AB20", Display: "Cough disorder (TM2)"},
		{Code: "TM2-AC30", Display: "Diarrheal disorder (TM2)"},
	}

	ts.mappingRows = []mappingRow{
		{SourceCode: "NAM001", TargetCode: "TM2-AA10", Relationship: "equivalent", SnomedCTCode: "386661006", LoincCode: "8310-5"},
		{SourceCode: "NAM002", TargetCode: "TM2-AB20", Relationship: "equivalent", SnomedCTCode: "49727002", LoincCode: "64145-6"},
		{SourceCode: "NAM003", TargetCode: "TM2-AC30", Relationship: "broader", SnomedCTCode: "62315008", LoincCode: "34532-2"},
	}
}
