package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventhub/server/internal/api/problem"
	"github.com/eventhub/server/internal/domain/events"
	"github.com/eventhub/server/internal/uploads"
)

const maxUploadBytes = 32 << 20

type EventsHandler struct {
	Service *events.Service
	Uploads *uploads.Store
	Env     string
}

func NewEventsHandler(service *events.Service, store *uploads.Store, env string) *EventsHandler {
	return &EventsHandler{Service: service, Uploads: store, Env: env}
}

type createEventResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
}

type eventResponse struct {
	ID          int64   `json:"id"`
	Owner       int64   `json:"owner"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OrganizedBy string  `json:"organized_by"`
	EventDate   string  `json:"event_date"`
	EventTime   string  `json:"event_time"`
	Location    string  `json:"location"`
	TicketPrice float64 `json:"ticket_price"`
	Likes       int64   `json:"likes"`
	Image       *string `json:"image"`
}

// Create handles POST /createEvent: a multipart form with the event fields
// and at most one optional "image" file. The image is stored before the row
// is inserted; an insert failure does not remove the stored file.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid multipart form", err, h.Env)
		return
	}

	owner, err := formInt(r, "owner")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid owner", err, h.Env)
		return
	}
	likes, err := formInt(r, "likes")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid likes", err, h.Env)
		return
	}
	ticketPrice, err := formFloat(r, "ticketPrice")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid ticketPrice", err, h.Env)
		return
	}

	var image *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if h.Uploads == nil {
			problem.Write(w, r, http.StatusInternalServerError, "Error storing image",
				errors.New("upload store not configured"), h.Env)
			return
		}
		path, saveErr := h.Uploads.Save(file, header)
		if saveErr != nil {
			problem.Write(w, r, http.StatusInternalServerError, "Error storing image", saveErr, h.Env)
			return
		}
		image = &path
	} else if !errors.Is(err, http.ErrMissingFile) {
		problem.Write(w, r, http.StatusBadRequest, "Invalid image upload", err, h.Env)
		return
	}

	event, err := h.Service.Create(r.Context(), events.CreateParams{
		Owner:       owner,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		OrganizedBy: r.FormValue("organizedBy"),
		EventDate:   r.FormValue("eventDate"),
		EventTime:   r.FormValue("eventTime"),
		Location:    r.FormValue("location"),
		TicketPrice: ticketPrice,
		Likes:       likes,
		Image:       image,
	})
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Error inserting event", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, createEventResponse{
		ID:        event.ID,
		Title:     event.Title,
		EventDate: event.EventDate,
	})
}

// List handles GET /events: every event, unfiltered.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Error fetching events", err, h.Env)
		return
	}

	payload := make([]eventResponse, 0, len(items))
	for _, event := range items {
		payload = append(payload, toEventResponse(event))
	}
	writeJSON(w, http.StatusOK, payload)
}

// Get handles GET /event/{id} and is bound unchanged to the ordersummary
// and paymentsummary alias paths.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid event id", err, h.Env)
		return
	}

	event, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, "Event not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "Failed to fetch event from the database", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*event))
}

func toEventResponse(event events.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		Owner:       event.Owner,
		Title:       event.Title,
		Description: event.Description,
		OrganizedBy: event.OrganizedBy,
		EventDate:   event.EventDate,
		EventTime:   event.EventTime,
		Location:    event.Location,
		TicketPrice: event.TicketPrice,
		Likes:       event.Likes,
		Image:       event.Image,
	}
}

func formInt(r *http.Request, key string) (int64, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func formFloat(r *http.Request, key string) (float64, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}
