package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-care-console/gateway"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.New(server.URL, gateway.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "john@example.com", body["email"])
		require.Equal(t, "password123", body["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"status":       "success",
			"id":           7,
			"role":         "patient",
			"email":        "john@example.com",
			"hash":         "abc123",
			"redirect_url": "/app/abc123",
		})
	})

	result, err := client.Login(context.Background(), "john@example.com", "password123")
	require.NoError(t, err)
	require.False(t, result.TwoFactorRequired())
	require.Equal(t, "7", result.ID.String())
	require.Equal(t, "patient", result.Role)
	require.Equal(t, "/app/abc123", result.RedirectURL)
	require.NotEmpty(t, result.Raw)
}

func TestLogin_TwoFactorRequired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status":  "2fa_required",
			"user_id": 7,
			"message": "Verification code sent to john@example.com",
		})
	})

	result, err := client.Login(context.Background(), "john@example.com", "password123")
	require.NoError(t, err)
	require.True(t, result.TwoFactorRequired())
	require.Equal(t, "7", result.UserID.String())
}

func TestLogin_ServiceErrorDetailExtracted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]string{"detail": "Invalid Credentials"})
	})

	_, err := client.Login(context.Background(), "john@example.com", "wrong")
	var serviceErr *gateway.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	require.Equal(t, http.StatusForbidden, serviceErr.StatusCode)
	require.Equal(t, "Invalid Credentials", serviceErr.Detail)
}

func TestLogin_UnstructuredErrorGetsGenericMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Login(context.Background(), "john@example.com", "password123")
	var serviceErr *gateway.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	require.Contains(t, serviceErr.Detail, "status 502")
}

func TestLogin_ConnectionFailureIsNetworkErr(t *testing.T) {
	client, err := gateway.New("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "john@example.com", "password123")
	require.ErrorIs(t, err, gateway.NetworkErr)
}

func TestVerifyTwoFactor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify-2fa", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "7", body["user_id"])
		require.Equal(t, "123456", body["otp_code"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": "success", "id": 7, "role": "doctor",
			"redirect_url": "/doctor-app/abc123",
		})
	})

	result, err := client.VerifyTwoFactor(context.Background(), "7", "123456")
	require.NoError(t, err)
	require.Equal(t, "doctor", result.Role)
}

func TestGoogleOneTap_InBandFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "Invalid Token"})
	})

	result, err := client.GoogleOneTap(context.Background(), "bad-credential")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Invalid Token", result.Message)
}

func TestSendMessage_ReplyIsLastTranscriptEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/send", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"session_id": "session-1",
			"messages": []map[string]string{
				{"role": "user", "content": "hello"},
				{"role": "assistant", "content": "How can I help?"},
			},
		})
	})

	record, err := client.SendMessage(context.Background(), "7", "session-1", "hello")
	require.NoError(t, err)

	reply, err := record.Reply()
	require.NoError(t, err)
	require.Equal(t, "How can I help?", reply)
}

func TestAutocompleteAndTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/autocomplete":
			writeJSON(t, w, http.StatusOK, map[string]any{"suggestions": []string{"a", "b"}})
		case "/chat/generate_title":
			writeJSON(t, w, http.StatusOK, map[string]string{"title": "Knee Pain"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	suggestions, err := client.Autocomplete(context.Background(), "I ha")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, suggestions)

	title, err := client.GenerateTitle(context.Background(), "my knee hurts")
	require.NoError(t, err)
	require.Equal(t, "Knee Pain", title)
}

func TestUpload_MultipartFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "7", r.FormValue("patient_id"))
		require.Equal(t, "session-1", r.FormValue("session_id"))
		require.Equal(t, "true", r.FormValue("is_rec"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "memo.webm", header.Filename)
		require.Equal(t, "audio/webm", header.Header.Get("Content-Type"))

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("audio-bytes"), payload)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": "success", "file_id": "drive-1", "transcript": "spoken words",
		})
	})

	result, err := client.Upload(context.Background(), gateway.UploadRequest{
		PatientID:   "7",
		SessionID:   "session-1",
		FileName:    "memo.webm",
		ContentType: "audio/webm",
		Data:        []byte("audio-bytes"),
		IsRecording: true,
	})
	require.NoError(t, err)
	require.Equal(t, "spoken words", result.Transcript)
	require.Equal(t, "drive-1", result.FileID)
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "Invalid Credentials",
		gateway.UserMessage(&gateway.ServiceError{StatusCode: 403, Detail: "Invalid Credentials"}))

	client, err := gateway.New("http://127.0.0.1:1")
	require.NoError(t, err)
	_, netErr := client.Login(context.Background(), "a@b.com", "pw")
	require.Equal(t, "Unable to reach the service. Check your connection and try again.",
		gateway.UserMessage(netErr))
}
