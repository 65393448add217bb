package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/models"
)

// Menu categories of the admin landing page.
const (
	MenuCategoryAcademy = "학원운영"
	MenuCategorySite    = "홈페이지"
	MenuCategorySystem  = "시스템"
)

// DashboardWelcome greets the administrator on the landing page.
const DashboardWelcome = "관리자님 환영합니다"

var adminMenu = []models.MenuItem{
	{Title: "학생 관리", Description: "학생 등록, 수정, 조회", Icon: "👥", Category: MenuCategoryAcademy, Path: "/admin/students"},
	{Title: "선생님 관리", Description: "강사진 등록, 프로필 관리", Icon: "👨‍🏫", Category: MenuCategoryAcademy, Path: "/admin/teachers"},
	{Title: "수업 관리", Description: "수업 일정, 커리큘럼 관리", Icon: "📚", Category: MenuCategoryAcademy, Path: "/admin/classes"},
	{Title: "결제 관리", Description: "수강료, 결제 내역 관리", Icon: "💳", Category: MenuCategoryAcademy, Path: "/admin/payments"},
	{Title: "성적 관리", Description: "시험 성적, 평가 관리", Icon: "📊", Category: MenuCategoryAcademy, Path: "/admin/grades"},
	{Title: "출석 관리", Description: "출석 체크, 통계", Icon: "✅", Category: MenuCategoryAcademy, Path: "/admin/attendance"},
	{Title: "공지사항 관리", Description: "공지사항 작성, 수정, 삭제", Icon: "📢", Category: MenuCategorySite, Path: "/admin/notices"},
	{Title: "팝업 관리", Description: "팝업 생성, 노출 설정", Icon: "🔔", Category: MenuCategorySite, Path: "/admin/popups"},
	{Title: "홈페이지 콘텐츠", Description: "메인 화면, 페이지 내용 관리", Icon: "🌐", Category: MenuCategorySite, Path: "/admin/content"},
	{Title: "갤러리 관리", Description: "사진, 동영상 갤러리 관리", Icon: "📷", Category: MenuCategorySite, Path: "/admin/gallery"},
	{Title: "통계", Description: "학원 운영 통계", Icon: "📈", Category: MenuCategorySystem, Path: "/admin/statistics"},
	{Title: "설정", Description: "시스템 설정", Icon: "⚙️", Category: MenuCategorySystem, Path: "/admin/settings"},
}

// AdminMenu returns the landing menu grouped by category in display order.
func AdminMenu() []models.MenuSection {
	order := []string{MenuCategoryAcademy, MenuCategorySite, MenuCategorySystem}
	sections := make([]models.MenuSection, 0, len(order))
	for _, category := range order {
		section := models.MenuSection{Category: category, Title: category + " 관리"}
		for _, item := range adminMenu {
			if item.Category == category {
				section.Items = append(section.Items, item)
			}
		}
		sections = append(sections, section)
	}
	return sections
}

type studentSource interface {
	List(ctx context.Context, filter models.StudentFilter) []models.Student
}

type teacherSource interface {
	List(ctx context.Context, filter models.TeacherFilter) []models.Teacher
}

type noticeCounter interface {
	Stats(ctx context.Context) models.NoticeStats
}

type popupCounter interface {
	Stats(ctx context.Context) models.PopupStats
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students studentSource
	Teachers teacherSource
	Notices  noticeCounter
	Popups   popupCounter
	Logger   *zap.Logger
	Clock    Clock
}

// DashboardService composes the landing page from the live stores.
type DashboardService struct {
	students studentSource
	teachers teacherSource
	notices  noticeCounter
	popups   popupCounter
	logger   *zap.Logger
	now      Clock
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		students: params.Students,
		teachers: params.Teachers,
		notices:  params.Notices,
		popups:   params.Popups,
		logger:   logger,
		now:      now,
	}
}

// Admin returns the welcome text, menu and headline statistics.
func (s *DashboardService) Admin(ctx context.Context) *models.Dashboard {
	return &models.Dashboard{
		Welcome:     DashboardWelcome,
		Stats:       s.stats(ctx),
		Sections:    AdminMenu(),
		GeneratedAt: s.now().UTC(),
	}
}

func (s *DashboardService) stats(ctx context.Context) models.DashboardStats {
	var stats models.DashboardStats

	if s.students != nil {
		var attendanceSum int
		for _, st := range s.students.List(ctx, models.StudentFilter{}) {
			stats.TotalStudents++
			if st.PaymentStatus == models.PaymentStatusUnpaid {
				stats.UnpaidStudents++
			}
			if st.Status != models.StudentStatusActive {
				continue
			}
			stats.ActiveStudents++
			stats.MonthlyRevenue += st.Tuition
			attendanceSum += st.Attendance
		}
		if stats.ActiveStudents > 0 {
			rate := float64(attendanceSum) / float64(stats.ActiveStudents)
			stats.AttendanceRate = math.Round(rate*10) / 10
		}
	}

	if s.teachers != nil {
		for _, t := range s.teachers.List(ctx, models.TeacherFilter{}) {
			stats.TotalTeacherLoads += t.Students
			if t.Status != models.TeacherStatusActive {
				continue
			}
			stats.ActiveTeachers++
			stats.ActiveClasses += len(t.Classes)
		}
	}

	if s.notices != nil {
		stats.ActiveNotices = s.notices.Stats(ctx).Active
	}
	if s.popups != nil {
		popups := s.popups.Stats(ctx)
		stats.ActivePopups = popups.Active
		stats.ScheduledPopups = popups.Scheduled
	}

	s.logger.Debug("dashboard stats composed", zap.Int("students", stats.TotalStudents), zap.Int("teachers", stats.ActiveTeachers))
	return stats
}
