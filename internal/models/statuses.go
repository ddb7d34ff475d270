package models

type UserRole string
type UserStatus string
type EventStatus string
type ParticipationStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	EventStatusDraft     EventStatus = "draft"
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusEnded     EventStatus = "ended"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusDeleted   EventStatus = "deleted"

	ParticipationStatusPending  ParticipationStatus = "pending"
	ParticipationStatusApproved ParticipationStatus = "approved"
	ParticipationStatusRejected ParticipationStatus = "rejected"
	ParticipationStatusDeleted  ParticipationStatus = "deleted"
)

// Notification types created by server-side actions.
const (
	NotificationTypeEventUpdate    = "eventUpdate"
	NotificationTypeEventCancelled = "eventCancelled"
	NotificationTypeJoinRequest    = "joinRequest"
	NotificationTypeJoinApproved   = "joinApproved"
	NotificationTypeJoinRejected   = "joinRejected"
	NotificationTypeNewComment     = "newComment"
)
