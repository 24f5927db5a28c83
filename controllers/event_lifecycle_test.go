// File: /controllers/event_lifecycle_test.go
package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rct-connect-api/models"
)

func TestCreateEventProvisionsChatGroup(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach Carter", "coach@club.test", models.RoleCoach)

	event := createTestEvent(t, router, coach, "Sunday Long Run", nil)

	assert.Equal(t, "Sunday Long Run", event.Title)
	assert.Equal(t, models.DefaultGroupName, event.GroupName)
	assert.Equal(t, models.DefaultEventType, event.EventType)
	assert.Nil(t, event.MaxParticipants)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)
	assert.Equal(t, "Chat: Sunday Long Run", group.Name)
	assert.Equal(t, coach.ID, group.CreatedBy)

	var member models.ChatGroupMember
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", group.ID, coach.ID).First(&member).Error)
	assert.Equal(t, models.ChatRoleAdmin, member.Role)
}

func TestCreateEventRequiresPrivilegedRole(t *testing.T) {
	router, db := setupTestAPI(t)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events", tokenFor(t, runner), map[string]interface{}{
		"title":    "Rogue Event",
		"date":     "2026-10-01",
		"time":     "18:30",
		"location": "Club house",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, parseEnvelope(t, w).Success)

	var count int64
	db.Model(&models.Event{}).Count(&count)
	assert.Zero(t, count, "validation failure must not persist anything")
}

func TestCreateEventValidation(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	token := tokenFor(t, coach)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"short title", map[string]interface{}{
			"title": "ab", "date": "2026-10-01", "time": "18:30", "location": "Club house",
		}},
		{"missing location", map[string]interface{}{
			"title": "Track Night", "date": "2026-10-01", "time": "18:30",
		}},
		{"negative distance", map[string]interface{}{
			"title": "Track Night", "date": "2026-10-01", "time": "18:30", "location": "Track", "distance": -5.0,
		}},
		{"zero max participants", map[string]interface{}{
			"title": "Track Night", "date": "2026-10-01", "time": "18:30", "location": "Track", "max_participants": 0,
		}},
		{"lone latitude", map[string]interface{}{
			"title": "Track Night", "date": "2026-10-01", "time": "18:30", "location": "Track", "location_latitude": 47.5,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/v1/events", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var events int64
	db.Model(&models.Event{}).Count(&events)
	assert.Zero(t, events)
	var groups int64
	db.Model(&models.ChatGroup{}).Count(&groups)
	assert.Zero(t, groups, "no chat group may exist without its event")
}

func TestJoinMirrorsChatMembership(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Tempo Tuesday", nil)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runner), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		ParticipantCount int64 `json:"participant_count"`
	}
	decodeData(t, w, &result)
	assert.Equal(t, int64(1), result.ParticipantCount)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)

	var member models.ChatGroupMember
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", group.ID, runner.ID).First(&member).Error)
	assert.Equal(t, models.ChatRoleMember, member.Role)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", runner.ID).Error)
	assert.Equal(t, 1, user.JoinedEvents)
}

func TestJoinIsNotIdempotentSilently(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Tempo Tuesday", nil)
	token := tokenFor(t, runner)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second join is rejected, not double counted
	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var rosterSize int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&rosterSize)
	assert.Equal(t, int64(1), rosterSize)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)
	var memberCount int64
	db.Model(&models.ChatGroupMember{}).Where("group_id = ? AND user_id = ?", group.ID, runner.ID).Count(&memberCount)
	assert.Equal(t, int64(1), memberCount)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", runner.ID).Error)
	assert.Equal(t, 1, user.JoinedEvents)
}

func TestJoinUnknownEvent(t *testing.T) {
	router, db := setupTestAPI(t)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/no-such-event/join", tokenFor(t, runner), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCapacityEnforcement(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	event := createTestEvent(t, router, coach, "Limited Intervals", intPtr(2))

	var runners []models.User
	for i := 0; i < 3; i++ {
		runners = append(runners, createTestUser(t, db,
			fmt.Sprintf("Runner %d", i), fmt.Sprintf("runner%d@club.test", i), models.RoleMember))
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runners[0]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runners[1]), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Third distinct join bounces off the cap
	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runners[2]), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, parseEnvelope(t, w).Error, "full")

	var rosterSize int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&rosterSize)
	assert.Equal(t, int64(2), rosterSize)
}

func TestLeaveRestoresPreJoinState(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Recovery Run", nil)
	token := tokenFor(t, runner)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/events/"+event.ID+"/leave", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		ParticipantCount int64 `json:"participant_count"`
	}
	decodeData(t, w, &result)
	assert.Zero(t, result.ParticipantCount)

	var rosterSize int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&rosterSize)
	assert.Zero(t, rosterSize)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)
	var memberCount int64
	db.Model(&models.ChatGroupMember{}).Where("group_id = ? AND user_id = ?", group.ID, runner.ID).Count(&memberCount)
	assert.Zero(t, memberCount)

	// Join+Leave nets to zero on the stored counter
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", runner.ID).Error)
	assert.Zero(t, user.JoinedEvents)

	// The creator's admin seed survives roster churn
	var adminCount int64
	db.Model(&models.ChatGroupMember{}).Where("group_id = ? AND user_id = ? AND role = ?",
		group.ID, coach.ID, models.ChatRoleAdmin).Count(&adminCount)
	assert.Equal(t, int64(1), adminCount)
}

func TestCreatorJoinLeaveKeepsAdminSeat(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	event := createTestEvent(t, router, coach, "Coach's Own Run", nil)
	token := tokenFor(t, coach)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)

	// Joining your own event keeps the admin seat, not a second member row
	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var member models.ChatGroupMember
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", group.ID, coach.ID).First(&member).Error)
	assert.Equal(t, models.ChatRoleAdmin, member.Role)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/events/"+event.ID+"/leave", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The roster row is gone but the admin seat survives
	var rosterSize int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&rosterSize)
	assert.Zero(t, rosterSize)

	var adminCount int64
	db.Model(&models.ChatGroupMember{}).Where("group_id = ? AND user_id = ? AND role = ?",
		group.ID, coach.ID, models.ChatRoleAdmin).Count(&adminCount)
	assert.Equal(t, int64(1), adminCount)

	// The creator still reaches their event's chat
	w = doRequest(t, router, http.MethodGet, "/api/v1/events/"+event.ID+"/messages", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", coach.ID).Error)
	assert.Zero(t, user.JoinedEvents)
}

func TestRosterUniqueIndexBacksJoin(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Race Day", nil)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Two joins racing past the duplicate check both reach the insert;
	// the unique index rejects the second one with a translated
	// duplicate-key error, which the handler maps to a conflict.
	err := db.Create(&models.EventParticipant{EventID: event.ID, UserID: runner.ID}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestLeaveWithoutJoin(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Recovery Run", nil)

	w := doRequest(t, router, http.MethodDelete, "/api/v1/events/"+event.ID+"/leave", tokenFor(t, runner), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetParticipantsDropsVanishedUsers(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runnerA := createTestUser(t, db, "Runner A", "a@club.test", models.RoleMember)
	runnerB := createTestUser(t, db, "Runner B", "b@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Trail Day", nil)

	for _, u := range []models.User{runnerA, runnerB} {
		w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, u), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Simulate an account deletion that left the roster row behind
	require.NoError(t, db.Delete(&models.User{}, "id = ?", runnerB.ID).Error)

	w := doRequest(t, router, http.MethodGet, "/api/v1/events/"+event.ID+"/participants", tokenFor(t, coach), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var participants []models.ParticipantView
	decodeData(t, w, &participants)
	require.Len(t, participants, 1)
	assert.Equal(t, runnerA.ID, participants[0].ID)
	assert.Equal(t, "Runner A", participants[0].Name)
}

func TestUpdateEventAuthorizationAndPatch(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	otherCoach := createTestUser(t, db, "Other Coach", "other@club.test", models.RoleCoach)
	admin := createTestUser(t, db, "Admin", "admin@club.test", models.RoleAdmin)
	event := createTestEvent(t, router, coach, "Hill Repeats", nil)

	// A coach who is not the creator cannot touch it
	w := doRequest(t, router, http.MethodPut, "/api/v1/events/"+event.ID, tokenFor(t, otherCoach),
		map[string]interface{}{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Partial patch by the creator changes only the supplied fields
	w = doRequest(t, router, http.MethodPut, "/api/v1/events/"+event.ID, tokenFor(t, coach),
		map[string]interface{}{"distance": 12.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Event
	decodeData(t, w, &updated)
	assert.Equal(t, "Hill Repeats", updated.Title)
	require.NotNil(t, updated.Distance)
	assert.Equal(t, 12.5, *updated.Distance)

	// Admins may update events they did not create
	w = doRequest(t, router, http.MethodPut, "/api/v1/events/"+event.ID, tokenFor(t, admin),
		map[string]interface{}{"title": "Hill Repeats v2"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The companion group is untouched by updates
	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)
	assert.Equal(t, "Chat: Hill Repeats", group.Name)
}

func TestDeleteEventCascades(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Farewell Run", nil)

	w := doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/join", tokenFor(t, runner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/messages", tokenFor(t, runner),
		map[string]interface{}{"content": "see you there"})
	require.Equal(t, http.StatusCreated, w.Code)

	var group models.ChatGroup
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&group).Error)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/events/"+event.ID, tokenFor(t, coach), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ChatGroup{}).Where("id = ?", group.ID).Count(&count)
	assert.Zero(t, count, "companion group must be cascade-deleted")
	db.Model(&models.ChatGroupMember{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ChatMessage{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteEventAuthorization(t *testing.T) {
	router, db := setupTestAPI(t)
	coach := createTestUser(t, db, "Coach", "coach@club.test", models.RoleCoach)
	runner := createTestUser(t, db, "Jane Runner", "jane@club.test", models.RoleMember)
	event := createTestEvent(t, router, coach, "Protected Run", nil)

	w := doRequest(t, router, http.MethodDelete, "/api/v1/events/"+event.ID, tokenFor(t, runner), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
