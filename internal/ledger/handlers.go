package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleListReceipts returns receipts, filtered when q or date query params
// are present
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	dateQuery := r.URL.Query().Get("date")

	var receipts []Receipt
	if query != "" || dateQuery != "" {
		receipts = s.service.SearchReceipts(query, dateQuery)
	} else {
		receipts = s.service.ListReceipts()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(receipts); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleCreateReceipt validates and creates a receipt
func (s *Server) handleCreateReceipt(w http.ResponseWriter, r *http.Request) {
	var input ReceiptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := s.service.CreateReceipt(input)
	if err != nil {
		if errors.Is(err, ErrInvalidReceipt) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Error creating receipt", "error", err)
		jsonError(w, "The receipt could not be saved; it may not survive a restart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(receipt); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetReceipt returns a single receipt
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Receipt ID required", http.StatusBadRequest)
		return
	}
	receipt, err := s.service.GetReceipt(id)
	if err != nil {
		corsError(w, "Receipt not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(receipt); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleMarkPaid transitions a receipt to paid
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Receipt ID required", http.StatusBadRequest)
		return
	}

	if err := s.service.MarkPaid(id); err != nil {
		switch {
		case errors.Is(err, ErrReceiptNotFound):
			corsError(w, "Receipt not found", http.StatusNotFound)
		case errors.Is(err, ErrStatusTransition):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("Error updating receipt status", "id", id, "error", err)
			jsonError(w, "The status change could not be saved; it may not survive a restart", http.StatusInternalServerError)
		}
		return
	}

	receipt, err := s.service.GetReceipt(id)
	if err != nil {
		corsError(w, "Receipt not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(receipt); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleReceiptPDF serves the rendered receipt document. The default is
// inline so the share fallback can open it; download=1 adds an attachment
// disposition and drops a copy into the export directory.
func (s *Server) handleReceiptPDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Receipt ID required", http.StatusBadRequest)
		return
	}

	data, filename, err := s.service.ReceiptPDF(id)
	if err != nil {
		if errors.Is(err, ErrReceiptNotFound) {
			corsError(w, "Receipt not found", http.StatusNotFound)
			return
		}
		slog.Error("Error rendering receipt document", "id", id, "error", err)
		corsError(w, "Error rendering document", http.StatusInternalServerError)
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
		if _, err := s.service.ExportReceiptPDF(id); err != nil {
			// The browser still gets the bytes; the disk copy is best effort
			slog.Warn("Export to disk failed", "id", id, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Write(data)
}

// handleSummary returns the dashboard totals
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.service.Summary()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleNextReceiptNumber previews the next receipt number for the form
func (s *Server) handleNextReceiptNumber(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"receipt_number": s.service.NextReceiptNumber(),
	}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
