package handlers_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thereayou/socialite/internal/models"
)

func (e *testEnv) createPublication(t *testing.T, author *models.User, text string, createdAt time.Time) *models.Publication {
	t.Helper()
	publication := &models.Publication{
		UserID:    author.ID,
		Text:      text,
		CreatedAt: createdAt,
	}
	require.NoError(t, e.db.SavePublication(publication))
	return publication
}

func TestPublicationSaveRequiresText(t *testing.T) {
	env := newTestEnv(t)
	env.as(env.createUser(t, "Ana", "ana", "ana@example.com"))

	w, resp := env.request(t, http.MethodPost, "/api/publication/save", map[string]string{})
	requireStatus(t, w, http.StatusBadRequest)
	require.Equal(t, "error", resp["status"])
}

func TestPublicationSaveAndDetail(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	env.as(ana)

	w, resp := env.request(t, http.MethodPost, "/api/publication/save", map[string]string{
		"text": "hola mundo",
	})
	requireStatus(t, w, http.StatusOK)
	require.Equal(t, "success", resp["status"])

	publication := resp["publication"].(map[string]interface{})
	id := publication["id"].(string)
	require.Equal(t, "hola mundo", publication["text"])
	require.Equal(t, ana.ID.String(), publication["user_id"])

	w, resp = env.request(t, http.MethodGet, "/api/publication/detail/"+id, nil)
	requireStatus(t, w, http.StatusOK)
	require.Equal(t, "hola mundo", resp["publication"].(map[string]interface{})["text"])
}

func TestPublicationDetailNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.as(env.createUser(t, "Ana", "ana", "ana@example.com"))

	w, resp := env.request(t, http.MethodGet, "/api/publication/detail/00000000-0000-0000-0000-000000000001", nil)
	requireStatus(t, w, http.StatusNotFound)
	require.Equal(t, "error", resp["status"])
}

func TestPublicationRemoveOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	bob := env.createUser(t, "Bob", "bob", "bob@example.com")
	publication := env.createPublication(t, ana, "mine", time.Now())

	env.as(bob)
	w, resp := env.request(t, http.MethodDelete, "/api/publication/remove/"+publication.ID.String(), nil)
	requireStatus(t, w, http.StatusInternalServerError)
	require.Equal(t, "error", resp["status"])

	env.as(ana)
	w, resp = env.request(t, http.MethodDelete, "/api/publication/remove/"+publication.ID.String(), nil)
	requireStatus(t, w, http.StatusOK)
	require.Equal(t, "success", resp["status"])
	require.Equal(t, publication.ID.String(), resp["publication"])
}

func TestUserPublicationsPaginated(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		env.createPublication(t, ana, "post", base.Add(time.Duration(i)*time.Minute))
	}

	env.as(ana)
	w, resp := env.request(t, http.MethodGet, "/api/publication/user/"+ana.ID.String(), nil)
	requireStatus(t, w, http.StatusOK)
	require.EqualValues(t, 7, resp["total"])
	require.EqualValues(t, 2, resp["pages"])
	require.Len(t, resp["publications"].([]interface{}), 5)

	// Автор подгружен без чувствительных полей
	first := resp["publications"].([]interface{})[0].(map[string]interface{})
	author := first["user"].(map[string]interface{})
	require.Equal(t, "ana", author["nick"])
	require.NotContains(t, author, "email")
	require.NotContains(t, author, "password")

	w, resp = env.request(t, http.MethodGet, "/api/publication/user/"+ana.ID.String()+"/2", nil)
	requireStatus(t, w, http.StatusOK)
	require.Len(t, resp["publications"].([]interface{}), 2)
}

func TestUserPublicationsEmptyIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	env.as(ana)

	w, resp := env.request(t, http.MethodGet, "/api/publication/user/"+ana.ID.String(), nil)
	requireStatus(t, w, http.StatusNotFound)
	require.Equal(t, "error", resp["status"])
}

func TestFeedOrderedAndPaginated(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	bob := env.createUser(t, "Bob", "bob", "bob@example.com")
	eve := env.createUser(t, "Eve", "eve", "eve@example.com")

	base := time.Now().Add(-time.Hour)
	env.createPublication(t, bob, "older", base)
	env.createPublication(t, bob, "newer", base.Add(time.Minute))
	env.createPublication(t, eve, "not followed", base.Add(2*time.Minute))

	env.as(ana)
	w, _ := env.request(t, http.MethodPost, "/api/follow/save", map[string]string{"followed": bob.ID.String()})
	requireStatus(t, w, http.StatusOK)

	w, resp := env.request(t, http.MethodGet, "/api/publication/feed", nil)
	requireStatus(t, w, http.StatusOK)
	require.EqualValues(t, 2, resp["total"])
	require.EqualValues(t, 1, resp["pages"])

	publications := resp["publications"].([]interface{})
	require.Len(t, publications, 2)
	require.Equal(t, "newer", publications[0].(map[string]interface{})["text"])
	require.Equal(t, "older", publications[1].(map[string]interface{})["text"])

	following := resp["following"].([]interface{})
	require.Len(t, following, 1)
	require.Equal(t, bob.ID.String(), following[0])
}

func TestFeedEmptyIsError(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	env.as(ana)

	// Пользователь ни на кого не подписан: лента отвечает ошибкой, а не пустым списком
	w, resp := env.request(t, http.MethodGet, "/api/publication/feed", nil)
	requireStatus(t, w, http.StatusInternalServerError)
	require.Equal(t, "error", resp["status"])
	require.Equal(t, "no publications to show", resp["message"])
}

func TestPublicationUploadInvalidExtensionRemovesFile(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	publication := env.createPublication(t, ana, "post", time.Now())
	env.as(ana)

	w, resp := env.upload(t, "/api/publication/upload/"+publication.ID.String(), "video.mp4", []byte("mp4"))
	requireStatus(t, w, http.StatusBadRequest)
	require.Equal(t, "error", resp["status"])

	entries, err := os.ReadDir(env.mediaDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPublicationUploadAndServeMedia(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	publication := env.createPublication(t, ana, "post", time.Now())
	env.as(ana)

	content := []byte("gif-bytes")
	w, resp := env.upload(t, "/api/publication/upload/"+publication.ID.String(), "cat.gif", content)
	requireStatus(t, w, http.StatusOK)
	filename := resp["file"].(string)

	stored := resp["publication"].(map[string]interface{})
	require.Equal(t, filename, stored["file"])

	w, _ = env.request(t, http.MethodGet, "/api/publication/media/"+filename, nil)
	requireStatus(t, w, http.StatusOK)
	require.Equal(t, content, w.Body.Bytes())
}

func TestPublicationUploadForeignPublication(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana", "ana@example.com")
	bob := env.createUser(t, "Bob", "bob", "bob@example.com")
	publication := env.createPublication(t, ana, "post", time.Now())

	env.as(bob)
	w, resp := env.upload(t, "/api/publication/upload/"+publication.ID.String(), "cat.png", []byte("png"))
	requireStatus(t, w, http.StatusInternalServerError)
	require.Equal(t, "error", resp["status"])
}

func TestMediaNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.as(env.createUser(t, "Ana", "ana", "ana@example.com"))

	w, resp := env.request(t, http.MethodGet, "/api/publication/media/missing.png", nil)
	requireStatus(t, w, http.StatusNotFound)
	require.Equal(t, "error", resp["status"])
}
