package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"momento/internal/auth"
	"momento/internal/model"
	"momento/internal/organizer"
	"momento/internal/repository"
	"momento/internal/service"
	"momento/internal/storage"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, f.err
}

type fakeOrganizer struct {
	draft       *organizer.RecipeDraft
	description string
	err         error
}

func (f *fakeOrganizer) Organize(ctx context.Context, transcript string) (*organizer.RecipeDraft, error) {
	return f.draft, f.err
}

func (f *fakeOrganizer) ImproveDescription(ctx context.Context, recipe *model.Recipe) (string, error) {
	return f.description, f.err
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	assets := repository.NewMemoryAudioRepository()
	recipes := repository.NewMemoryRecipeRepository()
	tokens := auth.NewTokenService("test-secret", time.Minute)
	blobs := storage.NewLocalStore(t.TempDir())
	log := zerolog.Nop()

	tr := &fakeTranscriber{text: "양파를 볶다가 간장을 넣어주세요"}
	org := &fakeOrganizer{
		draft: &organizer.RecipeDraft{
			Title:       "양파볶음",
			Description: "간단한 반찬",
			Ingredients: model.IngredientList{{Name: "양파", Amount: "1개"}},
			Steps:       model.StepList{{Step: 1, Instruction: "양파를 볶는다"}},
			Servings:    "2-3인분",
			CookingTime: "10분",
			Difficulty:  "쉬움",
			Category:    "반찬",
		},
		description: "달큰하게 볶아낸 양파 반찬입니다",
	}

	return NewRouter(Deps{
		Audio:   service.NewAudioService(blobs, assets, tr, log),
		Recipes: service.NewRecipeService(recipes, assets, org, log),
		Users:   users,
		Tokens:  tokens,
		Log:     log,
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Kind    string          `json:"kind"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a JSON envelope: %v: %s", err, w.Body.String())
	}
	return w, env
}

func signupAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, _ := doJSON(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"email":     email,
		"password":  "password123",
		"full_name": "테스터",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d: %s", w.Code, w.Body.String())
	}

	w, env := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", data.TokenType)
	}
	return data.AccessToken
}

func uploadAudio(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="recipe.m4a"`)
	header.Set("Content-Type", "audio/m4a")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("fake audio bytes")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/audio/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	var asset struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &asset); err != nil {
		t.Fatal(err)
	}
	return asset.ID
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w, env := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("health check failed: %d %s", w.Code, w.Body.String())
	}
}

func TestSignupLoginMe(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "cook@example.com")

	w, env := doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", w.Code, w.Body.String())
	}
	var me struct {
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatal(err)
	}
	if me.Email != "cook@example.com" || !me.IsActive {
		t.Errorf("me = %+v, want active account with signup email", me)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	signupAndLogin(t, r, "cook@example.com")

	w, env := doJSON(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"email":    "cook@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup status = %d, want 400", w.Code)
	}
	if env.Error != "email already registered" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	signupAndLogin(t, r, "cook@example.com")

	w, env := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "cook@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if env.Error != "incorrect email or password" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/audio/"},
		{http.MethodGet, "/recipes/"},
	}
	for _, p := range paths {
		w, env := doJSON(t, r, p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, w.Code)
		}
		if env.Success {
			t.Errorf("%s %s: success = true in error envelope", p.method, p.path)
		}
	}

	w, _ := doJSON(t, r, http.MethodGet, "/auth/me", "forged.token.value", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forged token: status = %d, want 401", w.Code)
	}
}

func TestUploadProcessRecipeFlow(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "cook@example.com")
	audioID := uploadAudio(t, r, token)

	w, env := doJSON(t, r, http.MethodPost, "/audio/process", token, gin.H{"audio_id": audioID})
	if w.Code != http.StatusOK {
		t.Fatalf("process status = %d: %s", w.Code, w.Body.String())
	}
	var processed struct {
		TranscriptText   *string `json:"transcript_text"`
		ProcessingStatus string  `json:"processing_status"`
	}
	if err := json.Unmarshal(env.Data, &processed); err != nil {
		t.Fatal(err)
	}
	if processed.ProcessingStatus != string(model.StatusCompleted) {
		t.Errorf("processing_status = %q, want completed", processed.ProcessingStatus)
	}
	if processed.TranscriptText == nil || *processed.TranscriptText == "" {
		t.Error("transcript_text missing after processing")
	}

	w, env = doJSON(t, r, http.MethodGet, "/audio/"+audioID+"/transcript", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("transcript status = %d: %s", w.Code, w.Body.String())
	}

	w, env = doJSON(t, r, http.MethodPost, "/recipes/", token, gin.H{"source_audio_id": audioID})
	if w.Code != http.StatusOK {
		t.Fatalf("create recipe status = %d: %s", w.Code, w.Body.String())
	}
	var recipe model.Recipe
	if err := json.Unmarshal(env.Data, &recipe); err != nil {
		t.Fatal(err)
	}
	if recipe.Title != "양파볶음" {
		t.Errorf("title = %q, want organizer output", recipe.Title)
	}
	if recipe.SourceAudioID == nil || recipe.SourceAudioID.String() != audioID {
		t.Error("recipe not linked to the source audio")
	}

	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/recipes/%s/improve-description", recipe.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("improve-description status = %d: %s", w.Code, w.Body.String())
	}
	var improved struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(env.Data, &improved); err != nil {
		t.Fatal(err)
	}
	if improved.Description != "달큰하게 볶아낸 양파 반찬입니다" {
		t.Errorf("description = %q", improved.Description)
	}
}

func TestRecipeBeforeTranscriptionRejected(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "cook@example.com")
	audioID := uploadAudio(t, r, token)

	w, env := doJSON(t, r, http.MethodPost, "/recipes/", token, gin.H{"source_audio_id": audioID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 before transcription", w.Code)
	}
	if env.Kind != "precondition" {
		t.Errorf("kind = %q, want precondition", env.Kind)
	}
}

func TestOwnerScopingHidesForeignAssets(t *testing.T) {
	r := newTestRouter(t)
	owner := signupAndLogin(t, r, "owner@example.com")
	other := signupAndLogin(t, r, "other@example.com")
	audioID := uploadAudio(t, r, owner)

	w, _ := doJSON(t, r, http.MethodGet, "/audio/"+audioID+"/transcript", other, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign transcript status = %d, want 404", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/audio/process", other, gin.H{"audio_id": audioID})
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign process status = %d, want 404", w.Code)
	}
}

func TestInvalidIDFormats(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "cook@example.com")

	w, _ := doJSON(t, r, http.MethodPost, "/audio/process", token, gin.H{"audio_id": "not-a-uuid"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("process with bad id: status = %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/recipes/not-a-uuid", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("get recipe with bad id: status = %d, want 400", w.Code)
	}
}

func TestUploadRejectsNonAudio(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "cook@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("not audio"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/audio/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-audio upload: status = %d, want 400", w.Code)
	}
}
