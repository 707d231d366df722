package domain

import "time"

// DefaultSnapshot returns the demo seed used on first run and whenever the
// durable slot is absent or unreadable: three users (one per role), two
// ships, two components, one open job, and one notification.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Users: []User{
			{ID: "1", Role: RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
			{ID: "2", Role: RoleInspector, Email: "inspector@entnt.in", Password: "inspect123"},
			{ID: "3", Role: RoleEngineer, Email: "engineer@entnt.in", Password: "engine123"},
		},
		Ships: []Ship{
			{ID: "s1", Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: ShipStatusActive},
			{ID: "s2", Name: "Maersk Alabama", IMO: "9164263", Flag: "USA", Status: ShipStatusUnderMaintenance},
		},
		Components: []Component{
			{
				ID:                  "c1",
				ShipID:              "s1",
				Name:                "Main Engine",
				SerialNumber:        "ME-1234",
				InstallDate:         NewDate(2020, time.January, 10),
				LastMaintenanceDate: NewDate(2024, time.March, 12),
			},
			{
				ID:                  "c2",
				ShipID:              "s2",
				Name:                "Radar",
				SerialNumber:        "RAD-5678",
				InstallDate:         NewDate(2021, time.July, 18),
				LastMaintenanceDate: NewDate(2023, time.December, 1),
			},
		},
		Jobs: []Job{
			{
				ID:                 "j1",
				ShipID:             "s1",
				ComponentID:        "c1",
				Type:               "Inspection",
				Priority:           JobPriorityHigh,
				Status:             JobStatusOpen,
				AssignedEngineerID: "3",
				ScheduledDate:      NewDate(2025, time.May, 5),
				CreatedDate:        NewDate(2024, time.December, 1),
				Description:        "Regular engine inspection",
			},
		},
		Notifications: []Notification{
			{
				ID:        "n1",
				Message:   "New inspection job created for Ever Given",
				Category:  NotificationJobCreated,
				Timestamp: time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC),
				Read:      false,
			},
		},
		CurrentUserID: nil,
		Authenticated: false,
	}
}
