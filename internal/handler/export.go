package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

// ExportNotesCSV exporte les notes leader en CSV, une ligne par note avec le
// nom de l'ambassadeur et du leader résolus
func ExportNotesCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(r.Context(), `
		SELECT n.created_at, a.name, l.name, n.message
		FROM leader_notes n
		JOIN users a ON a.id = n.ambassador_id
		JOIN users l ON l.id = n.leader_id
		ORDER BY n.created_at DESC`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les notes", err)
		return
	}
	defer rows.Close()

	filename := fmt.Sprintf("notes-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "ambassador", "leader", "message"}); err != nil {
		return
	}
	for rows.Next() {
		var createdAt time.Time
		var ambassador, leader, message string
		if err := rows.Scan(&createdAt, &ambassador, &leader, &message); err != nil {
			utils.LogError("notes export scan failed: %v", err)
			return
		}
		record := []string{
			createdAt.Format("2006-01-02 15:04"),
			ambassador,
			leader,
			message,
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
	if err := rows.Err(); err != nil {
		utils.LogError("notes export read failed: %v", err)
	}
}
