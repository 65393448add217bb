package models

import "time"

// MenuItem is one entry of the admin landing menu.
type MenuItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Path        string `json:"path"`
}

// MenuSection groups menu items of one category.
type MenuSection struct {
	Category string     `json:"category"`
	Title    string     `json:"title"`
	Items    []MenuItem `json:"items"`
}

// DashboardStats are the headline numbers of the landing page.
type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	ActiveStudents    int     `json:"active_students"`
	ActiveClasses     int     `json:"active_classes"`
	MonthlyRevenue    int     `json:"monthly_revenue"`
	AttendanceRate    float64 `json:"attendance_rate"`
	ActiveTeachers    int     `json:"active_teachers"`
	ActiveNotices     int     `json:"active_notices"`
	ActivePopups      int     `json:"active_popups"`
	UnpaidStudents    int     `json:"unpaid_students"`
	ScheduledPopups   int     `json:"scheduled_popups"`
	TotalTeacherLoads int     `json:"total_teacher_students"`
}

// Dashboard is the landing payload.
type Dashboard struct {
	Welcome     string         `json:"welcome"`
	Stats       DashboardStats `json:"stats"`
	Sections    []MenuSection  `json:"sections"`
	GeneratedAt time.Time      `json:"generated_at"`
}
