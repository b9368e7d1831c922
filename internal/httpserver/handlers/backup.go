package handlers

import (
	"net/http"

	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/httpx"
)

// Backup handles POST /admin/backup: it nudges the backup scheduler to take
// a snapshot now. Non-blocking; a full trigger channel means one is already
// pending.
func Backup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireVerifiedSession(w, r) {
			return
		}

		if d.BackupTrigger == nil {
			httpx.Fail(w, "backups are disabled")
			return
		}

		select {
		case d.BackupTrigger <- struct{}{}:
			httpx.WriteJSON(w, httpx.Response{Success: true, Message: "backup triggered"})
		default:
			httpx.Fail(w, "backup already in progress")
		}
	}
}
