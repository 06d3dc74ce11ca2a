package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/you/termbridge/domain"
)

// TestServer is a fake terminology portal backend. It reproduces the real
// backend's seven routes, error bodies, and token scheme so the client
// stack can be exercised end to end without a network.
type TestServer struct {
	Server  *httptest.Server
	BaseURL string

	// OmitAccessToken makes login answer without a token, simulating the
	// malformed-response case the session manager must reject.
	OmitAccessToken bool

	secret []byte

	mu          sync.Mutex
	users       map[string]domain.UserProfile
	history     map[string][]domain.TranslationHistoryEntry
	namaste     []domain.CodeSystemConcept
	icd         []domain.CodeSystemConcept
	mappingRows []mappingRow
	nextEntryID int64
}

// mappingRow is one line of the combined NAMASTE/ICD-11/SNOMED/LOINC map.
type mappingRow struct {
	SourceCode   string
	TargetCode   string
	Relationship string
	SnomedCTCode string
	LoincCode    string
}

// NewTestServer starts a fake portal backend seeded with fixture data.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		secret:      []byte("e2e-test-secret"),
		users:       map[string]domain.UserProfile{},
		history:     map[string][]domain.TranslationHistoryEntry{},
		nextEntryID: 1,
	}
	seedFixtures(ts)

	r := gin.New()
	r.POST("/abha/login", ts.handleLogin)
	r.GET("/abha/profile", ts.handleProfile)
	r.GET("/abha/translation-history", ts.handleHistory)
	r.POST("/abha/save-translation", ts.handleSaveTranslation)
	r.GET("/namaste/namaste/search", ts.handleNamasteSearch)
	r.GET("/icd/icd11/tm2/search", ts.handleICDSearch)
	r.GET("/mapping/translate", ts.handleTranslate)

	ts.Server = httptest.NewServer(r)
	ts.BaseURL = ts.Server.URL
	t.Cleanup(ts.Server.Close)
	return ts
}

// HistoryCount reports how many history entries a user has accumulated.
func (ts *TestServer) HistoryCount(abhaID string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.history[abhaID])
}

func (ts *TestServer) mintToken(abhaID string) string {
	claims := jwt.MapClaims{
		"abha_id": abhaID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// verifyToken extracts the abha_id from a bearer header, or "" when the
// header is missing or the token does not verify.
func (ts *TestServer) verifyToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	abhaID, _ := claims["abha_id"].(string)
	return abhaID
}

// requireAuth aborts with the backend's 401 body shapes when the request
// carries no valid token.
func (ts *TestServer) requireAuth(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header missing"})
		return "", false
	}
	abhaID := ts.verifyToken(header)
	if abhaID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
		return "", false
	}
	return abhaID, true
}

func (ts *TestServer) handleLogin(c *gin.Context) {
	var req struct {
		ABHAID string `json:"abha_id"`
		Phone  string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	ts.mu.Lock()
	user, ok := ts.users[req.ABHAID]
	ts.mu.Unlock()
	if !ok || user.Phone != req.Phone {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid ABHA ID or phone number"})
		return
	}

	resp := gin.H{"message": "Login successful", "abha_user": user}
	if !ts.OmitAccessToken {
		resp["access_token"] = ts.mintToken(user.ABHAID)
	}
	c.JSON(http.StatusOK, resp)
}

func (ts *TestServer) handleProfile(c *gin.Context) {
	abhaID, ok := ts.requireAuth(c)
	if !ok {
		return
	}
	ts.mu.Lock()
	user, found := ts.users[abhaID]
	ts.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ts *TestServer) handleHistory(c *gin.Context) {
	abhaID, ok := ts.requireAuth(c)
	if !ok {
		return
	}
	ts.mu.Lock()
	entries := ts.history[abhaID]
	if entries == nil {
		entries = []domain.TranslationHistoryEntry{}
	}
	ts.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (ts *TestServer) handleSaveTranslation(c *gin.Context) {
	abhaID, ok := ts.requireAuth(c)
	if !ok {
		return
	}
	var rec domain.TranslationRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	id := ts.appendHistory(abhaID, rec)
	c.JSON(http.StatusOK, gin.H{"message": "Translation history saved successfully", "entry_id": id})
}

// appendHistory prepends so history stays most-recent-first.
func (ts *TestServer) appendHistory(abhaID string, rec domain.TranslationRecord) int64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	entry := domain.TranslationHistoryEntry{
		ID:           ts.nextEntryID,
		ABHAID:       abhaID,
		SourceSystem: rec.SourceSystem,
		SourceCode:   rec.SourceCode,
		TargetSystem: rec.TargetSystem,
		TargetCode:   rec.TargetCode,
		SnomedCTCode: rec.SnomedCTCode,
		LoincCode:    rec.LoincCode,
		Timestamp:    time.Now().UTC(),
	}
	ts.nextEntryID++
	ts.history[abhaID] = append([]domain.TranslationHistoryEntry{entry}, ts.history[abhaID]...)
	return entry.ID
}

func searchConcepts(concepts []domain.CodeSystemConcept, query string) []domain.CodeSystemConcept {
	query = strings.ToLower(query)
	results := []domain.CodeSystemConcept{}
	for _, concept := range concepts {
		if strings.Contains(strings.ToLower(concept.Display), query) ||
			strings.Contains(strings.ToLower(concept.Code), query) {
			results = append(results, concept)
		}
	}
	return results
}

func (ts *TestServer) handleNamasteSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "query must not be empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resourceType": "CodeSystem", "concepts": searchConcepts(ts.namaste, query)})
}

func (ts *TestServer) handleICDSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "query must not be empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resourceType": "CodeSystem", "concepts": searchConcepts(ts.icd, query)})
}

func (ts *TestServer) handleTranslate(c *gin.Context) {
	system := strings.ToUpper(strings.TrimSpace(c.Query("system")))
	code := strings.TrimSpace(c.Query("code"))
	saveHistory := c.Query("save_history") == "true"

	var sourceSystem, targetSystem string
	mappings := []domain.ConceptMapMapping{}
	switch system {
	case "NAM":
		sourceSystem, targetSystem = "NAMASTE", "ICD11_TM2"
		for _, row := range ts.mappingRows {
			if row.SourceCode == code {
				mappings = append(mappings, domain.ConceptMapMapping{
					SourceCode:   row.SourceCode,
					TargetCode:   row.TargetCode,
					Relationship: row.Relationship,
					SnomedCTCode: row.SnomedCTCode,
					LoincCode:    row.LoincCode,
				})
			}
		}
	case "TM2":
		sourceSystem, targetSystem = "ICD11_TM2", "NAMASTE"
		for _, row := range ts.mappingRows {
			if row.TargetCode == code {
				mappings = append(mappings, domain.ConceptMapMapping{
					SourceCode:   row.TargetCode,
					TargetCode:   row.SourceCode,
					Relationship: row.Relationship,
					SnomedCTCode: row.SnomedCTCode,
					LoincCode:    row.LoincCode,
				})
			}
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported system. Use NAM or TM2."})
		return
	}

	// History is recorded only for a valid bearer token; an invalid token
	// is ignored and the mapping is still returned.
	if saveHistory && len(mappings) > 0 {
		if abhaID := ts.verifyToken(c.GetHeader("Authorization")); abhaID != "" {
			ts.appendHistory(abhaID, domain.TranslationRecord{
				SourceSystem: sourceSystem,
				SourceCode:   code,
				TargetSystem: targetSystem,
				TargetCode:   mappings[0].TargetCode,
				SnomedCTCode: mappings[0].SnomedCTCode,
				LoincCode:    mappings[0].LoincCode,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"resourceType": "ConceptMap",
		"id":           "ConceptMap",
		"name":         "NAMASTE-ICD11-SNOMED-LOINC Map",
		"mappings":     mappings,
	})
}
