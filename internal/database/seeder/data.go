package seeder

import (
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

// Deterministic IDs so repeated seeding upserts instead of duplicating and
// so the demo profile IDs are stable across restarts.
var seedNamespace = uuid.MustParse("7b0cbe9a-2f3d-4c55-9a1e-6d2f8f4a1c03")

func jobID(title, company string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("job:"+title+":"+company))
}

func profileID(handle string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("profile:"+handle))
}

// DemoJobs is the starter catalog for running without an external job feed.
func DemoJobs(now time.Time) []job.Job {
	mk := func(daysAgo int, title, company, location string, remote bool, exp job.ExperienceLevel, salMin, salMax int, required, preferred []string) job.Job {
		return job.Job{
			ID:         jobID(title, company),
			Title:      title,
			Company:    company,
			Location:   location,
			Remote:     remote,
			Experience: exp,
			Salary:     job.SalaryRange{Min: salMin, Max: salMax, Currency: "USD"},
			Required:   skill.NewSet(required...),
			Preferred:  skill.NewSet(preferred...),
			PostedAt:   now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
			Active:     true,
		}
	}

	return []job.Job{
		mk(2, "Senior Python Developer", "Tech Innovators", "San Francisco, CA", true, job.ExperienceSenior, 130000, 180000,
			[]string{"Python", "Django", "PostgreSQL", "REST APIs"},
			[]string{"Docker", "AWS", "Redis"}),
		mk(3, "Full Stack JavaScript Developer", "StartupXYZ", "New York, NY", false, job.ExperienceMid, 95000, 135000,
			[]string{"JavaScript", "React", "Node.js"},
			[]string{"TypeScript", "GraphQL", "MongoDB"}),
		mk(1, "Data Scientist", "DataCorp", "Austin, TX", true, job.ExperienceMid, 110000, 150000,
			[]string{"Python", "Machine Learning", "SQL", "Statistics"},
			[]string{"TensorFlow", "pandas", "Spark"}),
		mk(5, "DevOps Engineer", "CloudOps", "Seattle, WA", true, job.ExperienceSenior, 125000, 165000,
			[]string{"Kubernetes", "Docker", "CI/CD", "Linux"},
			[]string{"Terraform", "AWS", "Python"}),
		mk(1, "Junior Software Engineer", "Growing Tech", "Denver, CO", false, job.ExperienceEntry, 70000, 90000,
			[]string{"Python", "Git"},
			[]string{"JavaScript", "SQL"}),
		mk(4, "Machine Learning Engineer", "AI Innovations", "Boston, MA", true, job.ExperienceSenior, 140000, 190000,
			[]string{"Python", "Machine Learning", "TensorFlow", "Deep Learning"},
			[]string{"PyTorch", "Kubernetes", "MLOps"}),
		mk(6, "Frontend Developer", "Web Design Studio", "Portland, OR", false, job.ExperienceMid, 85000, 115000,
			[]string{"JavaScript", "React", "CSS", "HTML"},
			[]string{"TypeScript", "Figma", "Next.js"}),
		mk(7, "Backend Engineer", "Enterprise Solutions", "Chicago, IL", false, job.ExperienceMid, 100000, 140000,
			[]string{"Java", "Spring Boot", "SQL"},
			[]string{"Kafka", "Microservices", "Docker"}),
	}
}

// DemoProfiles are the accounts the demo mode answers for.
func DemoProfiles() []profile.Profile {
	return []profile.Profile{
		{
			ID:          profileID("john_doe"),
			Skills:      skill.NewSet("Python", "JavaScript", "React", "SQL", "Docker"),
			Experience:  job.ExperienceMid,
			DesiredRole: "Full Stack Developer",
			Location:    "San Francisco, CA",
			RemoteOnly:  false,
			SalaryFloor: 100000,
		},
		{
			ID:          profileID("jane_smith"),
			Skills:      skill.NewSet("Python", "Machine Learning", "TensorFlow", "Data Analysis", "pandas"),
			Experience:  job.ExperienceSenior,
			DesiredRole: "Machine Learning Engineer",
			Location:    "Boston, MA",
			RemoteOnly:  true,
			SalaryFloor: 130000,
		},
		{
			ID:          profileID("demo_user"),
			Skills:      skill.NewSet("Python", "JavaScript", "SQL"),
			Experience:  job.ExperienceEntry,
			DesiredRole: "Software Engineer",
			Location:    "Denver, CO",
			RemoteOnly:  false,
			SalaryFloor: 0,
		},
	}
}
