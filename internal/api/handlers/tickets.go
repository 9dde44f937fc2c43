package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eventhub/server/internal/api/problem"
	"github.com/eventhub/server/internal/domain/tickets"
	"github.com/go-playground/validator/v10"
)

type TicketsHandler struct {
	Service  *tickets.Service
	Validate *validator.Validate
	Env      string
}

func NewTicketsHandler(service *tickets.Service, env string) *TicketsHandler {
	return &TicketsHandler{
		Service:  service,
		Validate: validator.New(),
		Env:      env,
	}
}

type ticketDetails struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EventName   string  `json:"eventname"`
	EventDate   string  `json:"eventdate"`
	EventTime   string  `json:"eventtime"`
	TicketPrice float64 `json:"ticketprice"`
	QR          string  `json:"qr"`
}

type createTicketRequest struct {
	UserID        int64          `json:"userid"`
	EventID       int64          `json:"eventid"`
	TicketDetails *ticketDetails `json:"ticketDetails" validate:"required"`
}

type createTicketResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	EventName string `json:"eventname"`
}

type ticketResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	EventID     int64   `json:"event_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EventName   string  `json:"event_name"`
	EventDate   string  `json:"event_date"`
	EventTime   string  `json:"event_time"`
	TicketPrice float64 `json:"ticket_price"`
	QR          string  `json:"qr"`
}

// Create handles POST /tickets. The nested ticketDetails payload is the
// snapshot of the event at purchase time; its absence is a 400 and nothing
// is stored.
func (h *TicketsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Missing ticket details", err, h.Env)
		return
	}

	ticket, err := h.Service.Create(r.Context(), tickets.CreateParams{
		UserID:      req.UserID,
		EventID:     req.EventID,
		Name:        req.TicketDetails.Name,
		Email:       req.TicketDetails.Email,
		EventName:   req.TicketDetails.EventName,
		EventDate:   req.TicketDetails.EventDate,
		EventTime:   req.TicketDetails.EventTime,
		TicketPrice: req.TicketDetails.TicketPrice,
		QR:          req.TicketDetails.QR,
	})
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Error inserting ticket", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, createTicketResponse{
		ID:        ticket.ID,
		Name:      ticket.Name,
		EventName: ticket.EventName,
	})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Error fetching tickets", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponses(items))
}

// ListByUser handles GET /tickets/user/{userId}. A user with no tickets
// gets an empty array.
func (h *TicketsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid user id", err, h.Env)
		return
	}

	items, err := h.Service.ListByUser(r.Context(), userID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Failed to fetch user tickets", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponses(items))
}

// Delete handles DELETE /tickets/{id} and answers 204 whether or not a row
// existed.
func (h *TicketsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid ticket id", err, h.Env)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Failed to delete ticket", err, h.Env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTicketResponses(items []tickets.Ticket) []ticketResponse {
	payload := make([]ticketResponse, 0, len(items))
	for _, ticket := range items {
		payload = append(payload, ticketResponse{
			ID:          ticket.ID,
			UserID:      ticket.UserID,
			EventID:     ticket.EventID,
			Name:        ticket.Name,
			Email:       ticket.Email,
			EventName:   ticket.EventName,
			EventDate:   ticket.EventDate,
			EventTime:   ticket.EventTime,
			TicketPrice: ticket.TicketPrice,
			QR:          ticket.QR,
		})
	}
	return payload
}
