// AngelaMos | 2026
// dto.go

package dashboard

import "github.com/carterperez-dev/coursekit/internal/purchase"

// Metric fields are pointers so a failed metric serializes as null and is
// named in failedMetrics, instead of masquerading as a zero.
type AdminDashboard struct {
	TotalStudents    *int                   `json:"totalStudents"`
	TotalInstructors *int                   `json:"totalInstructors"`
	TotalCourses     *int                   `json:"totalCourses"`
	PublishedCourses *int                   `json:"publishedCourses"`
	DraftCourses     *int                   `json:"draftCourses"`
	PurchaseCounts   []purchase.StatusCount `json:"purchaseCounts"`
	CompletedRevenue *float64               `json:"completedRevenue"`
	FailedMetrics    []string               `json:"failedMetrics"`
}

func (d *AdminDashboard) fail(metric string) {
	d.FailedMetrics = append(d.FailedMetrics, metric)
}

type InstructorDashboard struct {
	Earnings         *float64 `json:"earnings"`
	CourseCount      *int     `json:"courseCount"`
	EnrolledStudents *int     `json:"enrolledStudents"`
	FailedMetrics    []string `json:"failedMetrics"`
}
