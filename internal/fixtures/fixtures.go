// Package fixtures holds the sample records the stores are seeded with.
package fixtures

import (
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
)

// Stores bundles one record store per admin resource.
type Stores struct {
	Students *store.Store[models.Student]
	Teachers *store.Store[models.Teacher]
	Notices  *store.Store[models.Notice]
	Popups   *store.Store[models.Popup]
}

// NewStores returns empty stores, seeded with the sample records when seed
// is set.
func NewStores(seed bool) Stores {
	stores := Stores{
		Students: store.New[models.Student](),
		Teachers: store.New[models.Teacher](),
		Notices:  store.New[models.Notice](),
		Popups:   store.New[models.Popup](),
	}
	if seed {
		stores.Students.Seed(Students()...)
		stores.Teachers.Seed(Teachers()...)
		stores.Notices.Seed(Notices()...)
		stores.Popups.Seed(Popups()...)
	}
	return stores
}

// Students returns the sample students.
func Students() []models.Student {
	return []models.Student{
		{
			ID:             1,
			Name:           "김민수",
			Grade:          "중3",
			School:         "서울중학교",
			Subjects:       []string{"수학", "영어"},
			Phone:          "010-1111-2222",
			ParentPhone:    "010-1234-5678",
			Address:        "서울시 강남구 테헤란로 123",
			BirthDate:      "2008-05-15",
			EnrollmentDate: "2024-03-01",
			Status:         models.StudentStatusActive,
			Tuition:        450000,
			PaymentStatus:  models.PaymentStatusPaid,
			Teacher:        "김수학",
			Attendance:     95,
			AverageScore:   87,
			Memo:           "수학에 특히 관심이 많고 성실한 학생입니다.",
			CreatedAt:      "2024-03-01",
		},
		{
			ID:             2,
			Name:           "박지영",
			Grade:          "고2",
			School:         "강남고등학교",
			Subjects:       []string{"영어", "국어"},
			Phone:          "010-2222-3333",
			ParentPhone:    "010-2345-6789",
			Address:        "서울시 서초구 서초대로 456",
			BirthDate:      "2007-08-22",
			EnrollmentDate: "2024-01-15",
			Status:         models.StudentStatusActive,
			Tuition:        500000,
			PaymentStatus:  models.PaymentStatusUnpaid,
			Teacher:        "박영어",
			Attendance:     88,
			AverageScore:   92,
			Memo:           "영어 실력이 우수하며 리더십이 있는 학생입니다.",
			CreatedAt:      "2024-01-15",
		},
		{
			ID:             3,
			Name:           "이준호",
			Grade:          "고3",
			School:         "대치고등학교",
			Subjects:       []string{"수학", "영어", "국어"},
			Phone:          "010-3333-4444",
			ParentPhone:    "010-3456-7890",
			Address:        "서울시 강남구 삼성동 789",
			BirthDate:      "2006-11-03",
			EnrollmentDate: "2023-09-01",
			Status:         models.StudentStatusGraduated,
			Tuition:        600000,
			PaymentStatus:  models.PaymentStatusPaid,
			Teacher:        "김수학",
			Attendance:     98,
			AverageScore:   95,
			Memo:           "목표 의식이 뚜렷하고 성실한 모범 학생입니다.",
			CreatedAt:      "2023-09-01",
		},
	}
}

// Teachers returns the sample teachers.
func Teachers() []models.Teacher {
	return []models.Teacher{
		{
			ID:           1,
			Name:         "김수학",
			Subject:      "수학",
			Phone:        "010-1234-5678",
			Email:        "kim.math@academy.com",
			HireDate:     "2023-03-01",
			Experience:   5,
			Education:    "서울대학교 수학과 석사",
			Introduction: "중고등학교 수학 전문 강사입니다. 학생 개개인의 수준에 맞춘 맞춤형 지도로 성적 향상을 이끌어냅니다.",
			Status:       models.TeacherStatusActive,
			Salary:       3500000,
			WorkDays:     []string{"월", "화", "수", "목", "금"},
			WorkHours:    "14:00-22:00",
			Classes:      []string{"중3 수학", "고1 수학", "고2 수학"},
			Students:     45,
			CreatedAt:    "2023-03-01",
		},
		{
			ID:           2,
			Name:         "박영어",
			Subject:      "영어",
			Phone:        "010-2345-6789",
			Email:        "park.english@academy.com",
			HireDate:     "2022-09-01",
			Experience:   8,
			Education:    "연세대학교 영문학과 학사, TESOL 자격증",
			Introduction: "원어민 수준의 영어 실력으로 회화와 문법을 동시에 지도합니다.",
			Status:       models.TeacherStatusActive,
			Salary:       3800000,
			WorkDays:     []string{"월", "수", "금", "토"},
			WorkHours:    "15:00-21:00",
			Classes:      []string{"중2 영어", "중3 영어", "고1 영어"},
			Students:     38,
			CreatedAt:    "2022-09-01",
		},
		{
			ID:           3,
			Name:         "이국어",
			Subject:      "국어",
			Phone:        "010-3456-7890",
			Email:        "lee.korean@academy.com",
			HireDate:     "2021-01-15",
			Experience:   12,
			Education:    "고려대학교 국어국문학과 박사",
			Introduction: "문학과 비문학, 문법까지 국어의 모든 영역을 체계적으로 지도합니다.",
			Status:       models.TeacherStatusLeave,
			Salary:       4200000,
			WorkDays:     []string{"화", "목", "토"},
			WorkHours:    "13:00-19:00",
			Classes:      []string{"고2 국어", "고3 국어"},
			Students:     0,
			CreatedAt:    "2021-01-15",
		},
	}
}

// Notices returns the sample notices.
func Notices() []models.Notice {
	return []models.Notice{
		{
			ID:        1,
			Title:     "2025년 봄 학기 등록 안내",
			Content:   "2025년 봄 학기 수강 등록이 시작됩니다. 자세한 내용은 공지사항을 확인해주세요.",
			Author:    models.DefaultNoticeAuthor,
			CreatedAt: "2025-01-15",
			Priority:  models.NoticePriorityImportant,
			IsActive:  true,
			Views:     156,
		},
		{
			ID:        2,
			Title:     "겨울방학 특강 프로그램 안내",
			Content:   "겨울방학 동안 진행되는 특강 프로그램에 대한 안내입니다.",
			Author:    models.DefaultNoticeAuthor,
			CreatedAt: "2025-01-10",
			Priority:  models.NoticePriorityNormal,
			IsActive:  true,
			Views:     89,
		},
		{
			ID:        3,
			Title:     "시설 정기 점검 안내",
			Content:   "학원 시설 정기 점검으로 인한 휴원 안내입니다.",
			Author:    models.DefaultNoticeAuthor,
			CreatedAt: "2025-01-05",
			Priority:  models.NoticePriorityUrgent,
			IsActive:  false,
			Views:     234,
		},
	}
}

// Popups returns the sample popups.
func Popups() []models.Popup {
	return []models.Popup{
		{
			ID:        1,
			Title:     "신규 수강생 모집",
			Content:   "2025년 봄 학기 신규 수강생을 모집합니다!\n수학, 영어, 국어 전 과목 수강 가능",
			LinkURL:   "/enrollment",
			StartDate: "2025-01-01",
			EndDate:   "2025-02-28",
			Position:  models.PopupPositionCenter,
			IsActive:  true,
			ShowOnce:  false,
			Width:     400,
			Height:    300,
			Priority:  1,
			CreatedAt: "2025-01-01",
		},
		{
			ID:        2,
			Title:     "겨울방학 특강 안내",
			Content:   "겨울방학 집중 특강 프로그램을 운영합니다.",
			LinkURL:   "/special-class",
			StartDate: "2025-01-15",
			EndDate:   "2025-01-31",
			Position:  models.PopupPositionTopRight,
			IsActive:  false,
			ShowOnce:  true,
			Width:     350,
			Height:    250,
			Priority:  2,
			CreatedAt: "2025-01-10",
		},
	}
}
