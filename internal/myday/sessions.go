package myday

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// sessionRecord is the upstream representation of a session.
// Both known upstream variants decode into it; SessionStatus is only sent by some endpoints and Locations may be
// omitted entirely.
type sessionRecord struct {
	SessionID        *uint64  `json:"SessionId"`
	Name             *string  `json:"SessionName"`
	Description      *string  `json:"SessionDescription"`
	Start            *string  `json:"StartDateTime"`
	End              *string  `json:"EndDateTime"`
	Locations        []string `json:"Locations"`
	AttendanceStatus *string  `json:"AttendanceStatus"`
	SessionStatus    *string  `json:"SessionStatus"`
}

// Session represents a session as exposed by the gateway
type Session struct {
	SessionID        uint64   `json:"session_id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Start            string   `json:"start"`
	End              string   `json:"end"`
	Locations        []string `json:"locations"`
	AttendanceStatus string   `json:"attendance_status"`
	SessionStatus    *string  `json:"session_status,omitempty"`
}

// toSession maps an upstream session record to its public representation.
// Locations is never nil in the result.
func (record *sessionRecord) toSession(endpoint string) (Session, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"SessionId", record.SessionID != nil},
		{"SessionName", record.Name != nil},
		{"SessionDescription", record.Description != nil},
		{"StartDateTime", record.Start != nil},
		{"EndDateTime", record.End != nil},
		{"AttendanceStatus", record.AttendanceStatus != nil},
	}
	for _, field := range required {
		if !field.present {
			return Session{}, missingField(endpoint, field.name)
		}
	}

	locations := make([]string, len(record.Locations))
	copy(locations, record.Locations)

	return Session{
		SessionID:        *record.SessionID,
		Name:             *record.Name,
		Description:      *record.Description,
		Start:            *record.Start,
		End:              *record.End,
		Locations:        locations,
		AttendanceStatus: *record.AttendanceStatus,
		SessionStatus:    record.SessionStatus,
	}, nil
}

// SessionsByDate retrieves all sessions between the given start and end times.
// Both values are passed to the myday API verbatim.
func (client *Client) SessionsByDate(ctx context.Context, startTime, endTime string) ([]Session, error) {
	query := url.Values{
		"startDateTime": {startTime},
		"endDateTime":   {endTime},
	}
	return client.searchSessions(ctx, endpointSessionsByDate, query)
}

// SessionsByCode retrieves all sessions matching the given registration code
func (client *Client) SessionsByCode(ctx context.Context, registrationCode uint64) ([]Session, error) {
	query := url.Values{
		"RegistrationCode": {strconv.FormatUint(registrationCode, 10)},
	}
	return client.searchSessions(ctx, endpointSessionsByCode, query)
}

func (client *Client) searchSessions(ctx context.Context, endpoint string, query url.Values) ([]Session, error) {
	var records []*sessionRecord
	if err := client.call(ctx, http.MethodGet, endpoint, query, nil, &records); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(records))
	for _, record := range records {
		if record == nil {
			return nil, missingField(endpoint, "session")
		}
		session, err := record.toSession(endpoint)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
