package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/auth"
	"github.com/waryix/FightFind/internal/domain"
)

// fakeStore is an in-memory stand-in for the postgres repository, backing
// every domain repository interface like the real one does.
type fakeStore struct {
	users       map[uuid.UUID]*domain.User
	profiles    []*domain.FighterProfile
	connections []*domain.Connection
	messages    []*domain.Message
	gyms        []*domain.Gym
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeStore) addUser(name string) uuid.UUID {
	id := uuid.New()
	s.users[id] = &domain.User{ID: id, FirstName: &name, CreatedAt: time.Now()}
	return id
}

func (s *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeStore) UpsertUser(_ context.Context, params domain.UpsertUserParams) (*domain.User, error) {
	u := &domain.User{
		ID:              params.ID,
		Email:           params.Email,
		FirstName:       params.FirstName,
		LastName:        params.LastName,
		ProfileImageURL: params.ProfileImageURL,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	s.users[params.ID] = u
	return u, nil
}

func (s *fakeStore) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*domain.FighterProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *fakeStore) UpsertProfile(_ context.Context, params domain.UpsertProfileParams) (*domain.FighterProfile, error) {
	p := &domain.FighterProfile{
		ID:              uuid.New(),
		UserID:          params.UserID,
		Discipline:      params.Discipline,
		ExperienceLevel: params.ExperienceLevel,
		WeightClass:     params.WeightClass,
		Weight:          params.Weight,
		Location:        params.Location,
		Latitude:        params.Latitude,
		Longitude:       params.Longitude,
		Bio:             params.Bio,
		Availability:    params.Availability,
		IsActive:        params.IsActive,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	for i, existing := range s.profiles {
		if existing.UserID == params.UserID {
			p.ID = existing.ID
			p.Rating = existing.Rating
			p.TotalRatings = existing.TotalRatings
			s.profiles[i] = p
			return p, nil
		}
	}
	s.profiles = append(s.profiles, p)
	return p, nil
}

func (s *fakeStore) ListActiveProfiles(_ context.Context, filters domain.SearchFilters) ([]*domain.ProfileResult, error) {
	var results []*domain.ProfileResult
	for _, p := range s.profiles {
		if !p.IsActive {
			continue
		}
		if filters.Discipline != "" && p.Discipline != filters.Discipline {
			continue
		}
		if filters.ExperienceLevel != "" && p.ExperienceLevel != filters.ExperienceLevel {
			continue
		}
		if filters.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(filters.Location)) {
			continue
		}
		res := &domain.ProfileResult{FighterProfile: *p}
		if owner, ok := s.users[p.UserID]; ok {
			res.User = owner.ToResponse()
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *fakeStore) AddProfileRating(_ context.Context, userID uuid.UUID, score int) (*domain.FighterProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			total := p.Rating*float64(p.TotalRatings) + float64(score)
			p.TotalRatings++
			p.Rating = total / float64(p.TotalRatings)
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *fakeStore) CreateConnection(_ context.Context, requesterID, receiverID uuid.UUID, message *string) (*domain.Connection, error) {
	conn := &domain.Connection{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.ConnectionStatusPending,
		Message:     message,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.connections = append(s.connections, conn)
	return conn, nil
}

func (s *fakeStore) GetConnectionByID(_ context.Context, connectionID uuid.UUID) (*domain.Connection, error) {
	for _, c := range s.connections {
		if c.ID == connectionID {
			return c, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (s *fakeStore) GetLiveConnectionBetween(_ context.Context, userA, userB uuid.UUID) (*domain.Connection, error) {
	for _, c := range s.connections {
		if !c.Status.Live() {
			continue
		}
		if (c.RequesterID == userA && c.ReceiverID == userB) || (c.RequesterID == userB && c.ReceiverID == userA) {
			return c, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (s *fakeStore) ListConnectionsByUser(_ context.Context, userID uuid.UUID) ([]*domain.ConnectionWithUsers, error) {
	var results []*domain.ConnectionWithUsers
	for _, c := range s.connections {
		if !c.IsParty(userID) {
			continue
		}
		results = append(results, &domain.ConnectionWithUsers{
			Connection: *c,
			Requester:  s.users[c.RequesterID],
			Receiver:   s.users[c.ReceiverID],
		})
	}
	return results, nil
}

func (s *fakeStore) UpdateConnectionStatus(_ context.Context, connectionID uuid.UUID, from, to domain.ConnectionStatus) (*domain.Connection, error) {
	for _, c := range s.connections {
		if c.ID == connectionID && c.Status == from {
			c.Status = to
			c.UpdatedAt = time.Now()
			return c, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (s *fakeStore) CreateMessage(_ context.Context, connectionID, senderID uuid.UUID, content string) (*domain.Message, error) {
	msg := &domain.Message{
		ID:           uuid.New(),
		ConnectionID: connectionID,
		SenderID:     senderID,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *fakeStore) ListMessagesByConnection(_ context.Context, connectionID uuid.UUID) ([]*domain.Message, error) {
	var results []*domain.Message
	for _, m := range s.messages {
		if m.ConnectionID != connectionID {
			continue
		}
		copied := *m
		if sender, ok := s.users[m.SenderID]; ok {
			copied.Sender = sender.ToResponse()
		}
		results = append(results, &copied)
	}
	return results, nil
}

func (s *fakeStore) MarkMessagesRead(_ context.Context, connectionID, readerID uuid.UUID) (int, error) {
	count := 0
	for _, m := range s.messages {
		if m.ConnectionID == connectionID && m.SenderID != readerID && m.ReadAt == nil {
			now := time.Now()
			m.ReadAt = &now
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CreateGym(_ context.Context, params domain.CreateGymParams) (*domain.Gym, error) {
	g := &domain.Gym{
		ID:        uuid.New(),
		Name:      params.Name,
		Address:   params.Address,
		City:      params.City,
		State:     params.State,
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.gyms = append(s.gyms, g)
	return g, nil
}

func (s *fakeStore) ListGyms(_ context.Context) ([]*domain.Gym, error) {
	return append([]*domain.Gym(nil), s.gyms...), nil
}

func (s *fakeStore) ListGymsNear(_ context.Context, latitude, longitude, radiusMiles float64) ([]*domain.Gym, error) {
	var results []*domain.Gym
	for _, g := range s.gyms {
		if g.Latitude == nil || g.Longitude == nil {
			continue
		}
		if domain.WithinRadius(latitude, longitude, *g.Latitude, *g.Longitude, radiusMiles) {
			results = append(results, g)
		}
	}
	return results, nil
}

func newTestServer(t *testing.T) (http.Handler, *fakeStore, *auth.JWTManager) {
	t.Helper()

	store := newFakeStore()
	logger := zap.NewNop()
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	profileService := domain.NewProfileService(store)
	userService := domain.NewUserService(store)
	gymService := domain.NewGymService(store)
	connectionService := domain.NewConnectionService(store)
	messageService := domain.NewMessageService(store, store)

	router := NewRouter(
		NewPartnerHandler(profileService, 100, logger),
		NewProfileHandler(profileService, userService, logger),
		NewGymHandler(gymService, logger),
		NewConnectionHandler(connectionService, logger),
		NewMessageHandler(messageService, logger),
		NewHealthHandler(),
		jwtManager,
		logger,
	)
	return router.Setup(), store, jwtManager
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeData unwraps the response envelope's data field into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	if len(envelope.Data) == 0 {
		return
	}
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func mintToken(t *testing.T, jwtManager *auth.JWTManager, userID uuid.UUID) string {
	t.Helper()
	token, err := jwtManager.GenerateAccessToken(userID, "")
	require.NoError(t, err)
	return token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/connections", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/connections", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPartnerSearch(t *testing.T) {
	handler, store, _ := newTestServer(t)

	ana := store.addUser("Ana")
	bo := store.addUser("Bo")
	cleo := store.addUser("Cleo")
	seed := func(userID uuid.UUID, rating float64) {
		store.profiles = append(store.profiles, &domain.FighterProfile{
			ID: uuid.New(), UserID: userID,
			Discipline:      domain.DisciplineBoxing,
			ExperienceLevel: domain.ExperienceIntermediate,
			Location:        "Austin, TX",
			IsActive:        true,
			Rating:          rating,
		})
	}
	seed(ana, 3.5)
	seed(bo, 4.8)
	seed(cleo, 2.0)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/partners?discipline=karate", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/partners?latitude=30.2", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/partners?limit=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/partners?offset=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/partners?discipline=boxing", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []*domain.ProfileResult
	decodeData(t, rec, &results)
	require.Len(t, results, 3)
	require.Equal(t, bo, results[0].UserID)
	require.Equal(t, ana, results[1].UserID)
	require.Equal(t, cleo, results[2].UserID)
	require.Equal(t, "Bo", results[0].User.FirstName)
}

func TestConnectionAndMessagingFlow(t *testing.T) {
	handler, store, jwtManager := newTestServer(t)

	ana := store.addUser("Ana")
	bo := store.addUser("Bo")
	anaToken := mintToken(t, jwtManager, ana)
	boToken := mintToken(t, jwtManager, bo)

	// Ana requests to spar with Bo.
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/connections", anaToken, map[string]any{
		"receiver_id": bo.String(),
		"message":     "Saturday rounds?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var conn domain.Connection
	decodeData(t, rec, &conn)
	require.Equal(t, domain.ConnectionStatusPending, conn.Status)

	// A duplicate request while the first is live is rejected.
	rec = doRequest(t, handler, http.MethodPost, "/api/v1/connections", boToken, map[string]any{
		"receiver_id": ana.String(),
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Messaging is closed until Bo accepts.
	msgPath := "/api/v1/connections/" + conn.ID.String() + "/messages"
	rec = doRequest(t, handler, http.MethodPost, msgPath, anaToken, map[string]any{"content": "hey"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Ana cannot accept her own request.
	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/connections/"+conn.ID.String(), anaToken, map[string]any{"status": "accepted"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/connections/"+conn.ID.String(), boToken, map[string]any{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, msgPath, anaToken, map[string]any{"content": "hey"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, msgPath, boToken, map[string]any{"content": "works for me"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, msgPath, boToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []*domain.Message
	decodeData(t, rec, &messages)
	require.Len(t, messages, 2)
	require.Equal(t, "hey", messages[0].Content)

	// Bo marks Ana's message read.
	rec = doRequest(t, handler, http.MethodPost, msgPath+"/read", boToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var marked struct {
		Updated int `json:"updated"`
	}
	decodeData(t, rec, &marked)
	require.Equal(t, 1, marked.Updated)

	// Blocking shuts the thread down.
	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/connections/"+conn.ID.String(), anaToken, map[string]any{"status": "blocked"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, msgPath, boToken, map[string]any{"content": "still on?"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfileUpsertAndRating(t *testing.T) {
	handler, store, jwtManager := newTestServer(t)

	ana := store.addUser("Ana")
	bo := store.addUser("Bo")
	anaToken := mintToken(t, jwtManager, ana)
	boToken := mintToken(t, jwtManager, bo)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/profile", anaToken, map[string]any{
		"discipline":       "muay-thai",
		"experience_level": "advanced",
		"location":         "Austin, TX",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/api/v1/profile", anaToken, map[string]any{
		"discipline":       "karate",
		"experience_level": "advanced",
		"location":         "Austin, TX",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Raters cannot rate themselves.
	ratePath := "/api/v1/profiles/" + ana.String() + "/ratings"
	rec = doRequest(t, handler, http.MethodPost, ratePath, anaToken, map[string]any{"score": 5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, ratePath, boToken, map[string]any{"score": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile domain.FighterProfile
	decodeData(t, rec, &profile)
	require.Equal(t, 1, profile.TotalRatings)
	require.InDelta(t, 5.0, profile.Rating, 0.001)
}

func TestIdentitySync(t *testing.T) {
	handler, store, jwtManager := newTestServer(t)

	ana := store.addUser("Ana")
	token, err := jwtManager.GenerateAccessToken(ana, "ana@example.com")
	require.NoError(t, err)

	// No email in the body: the token claim fills it in.
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/me", token, map[string]any{
		"first_name": "Ana",
		"last_name":  "Silva",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.UserResponse
	decodeData(t, rec, &user)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, "Silva", user.LastName)

	// An explicit body email wins over the claim.
	rec = doRequest(t, handler, http.MethodPost, "/api/v1/me", token, map[string]any{
		"email": "ana@fightfind.app",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec, &user)
	require.Equal(t, "ana@fightfind.app", user.Email)
}

func TestGymEndpoints(t *testing.T) {
	handler, store, jwtManager := newTestServer(t)

	ana := store.addUser("Ana")
	anaToken := mintToken(t, jwtManager, ana)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/gyms", "", map[string]any{"name": "Iron Temple"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/api/v1/gyms", anaToken, map[string]any{
		"name":      "Iron Temple",
		"address":   "1 Main St",
		"city":      "Austin",
		"state":     "TX",
		"latitude":  30.27,
		"longitude": -97.74,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/gyms", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var gyms []*domain.Gym
	decodeData(t, rec, &gyms)
	require.Len(t, gyms, 1)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/gyms?latitude=30.27&longitude=-97.74&radius=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &gyms)
	require.Len(t, gyms, 1)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/gyms?latitude=45.0&longitude=-97.74&radius=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	gyms = nil
	decodeData(t, rec, &gyms)
	require.Empty(t, gyms)
}
