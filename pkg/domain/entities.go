// Package domain defines the core persistent entities, value types, command
// vocabulary, and error kinds used by fleetcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in error reporting and persistence buckets.
const (
	// EntityUser identifies a user record.
	EntityUser EntityType = "user"
	// EntityShip identifies a ship record.
	EntityShip EntityType = "ship"
	// EntityComponent identifies an installed component record.
	EntityComponent EntityType = "component"
	// EntityJob identifies a maintenance job record.
	EntityJob EntityType = "job"
	// EntityNotification identifies a notification record.
	EntityNotification EntityType = "notification"
)

// Role enumerates the static user roles consulted by the access policy.
type Role string

// Canonical roles seeded at process start.
const (
	RoleAdmin     Role = "Admin"
	RoleInspector Role = "Inspector"
	RoleEngineer  Role = "Engineer"
)

// ShipStatus enumerates operational ship states.
type ShipStatus string

// Canonical ship statuses surfaced in fleet KPIs.
const (
	ShipStatusActive           ShipStatus = "Active"
	ShipStatusUnderMaintenance ShipStatus = "Under Maintenance"
	ShipStatusInactive         ShipStatus = "Inactive"
)

// JobStatus enumerates maintenance job workflow states.
type JobStatus string

// Canonical job statuses. Transitions are not restricted beyond role
// permission; the usual path is Open -> In Progress -> Completed.
const (
	JobStatusOpen       JobStatus = "Open"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
)

// JobPriority enumerates scheduling priorities.
type JobPriority string

// Canonical job priorities.
const (
	JobPriorityHigh   JobPriority = "High"
	JobPriorityMedium JobPriority = "Medium"
	JobPriorityLow    JobPriority = "Low"
)

// NotificationCategory tags a notification with the job lifecycle event that
// produced it.
type NotificationCategory string

// Notification categories emitted for job lifecycle mutations.
const (
	NotificationJobCreated   NotificationCategory = "job-created"
	NotificationJobUpdated   NotificationCategory = "job-updated"
	NotificationJobCompleted NotificationCategory = "job-completed"
)

// User is a static identity seeded at process start. Users are never created,
// edited, or deleted at runtime.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Ship is a vessel tracked by the fleet. The IMO identifier is exactly seven
// digits and unique across all ships.
type Ship struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	IMO    string     `json:"imo"`
	Flag   string     `json:"flag"`
	Status ShipStatus `json:"status"`
}

// Component is equipment installed on a ship.
type Component struct {
	ID                  string `json:"id"`
	ShipID              string `json:"shipId"`
	Name                string `json:"name"`
	SerialNumber        string `json:"serialNumber"`
	InstallDate         Date   `json:"installDate"`
	LastMaintenanceDate Date   `json:"lastMaintenanceDate"`
}

// Job is a maintenance job performed on a component. CreatedDate is set once
// at creation and never changes; AssignedEngineerID is empty when unassigned.
type Job struct {
	ID                 string      `json:"id"`
	ShipID             string      `json:"shipId"`
	ComponentID        string      `json:"componentId"`
	Type               string      `json:"type"`
	Priority           JobPriority `json:"priority"`
	Status             JobStatus   `json:"status"`
	AssignedEngineerID string      `json:"assignedEngineerId,omitempty"`
	ScheduledDate      Date        `json:"scheduledDate"`
	CreatedDate        Date        `json:"createdDate"`
	Description        string      `json:"description,omitempty"`
}

// Notification records a job lifecycle event. Read is the only field that may
// change after creation.
type Notification struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
}

// ValidShipStatus reports whether s is one of the canonical ship statuses.
func ValidShipStatus(s ShipStatus) bool {
	switch s {
	case ShipStatusActive, ShipStatusUnderMaintenance, ShipStatusInactive:
		return true
	}
	return false
}

// ValidJobStatus reports whether s is one of the canonical job statuses.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted:
		return true
	}
	return false
}

// ValidJobPriority reports whether p is one of the canonical priorities.
func ValidJobPriority(p JobPriority) bool {
	switch p {
	case JobPriorityHigh, JobPriorityMedium, JobPriorityLow:
		return true
	}
	return false
}
