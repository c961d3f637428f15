package http

import (
	"net/http"

	"github.com/paywave/accountd/pkg/httpx"
)

// HandleLogout is a pure acknowledgment. Tokens are stateless and not
// tracked server-side, so the only effect is the client discarding its copy.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out successfully"})
}
