package seeder

import (
	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/worker"

	"go.uber.org/zap"
)

const (
	techCorp        = "TechCorp Solutions"
	dataMind        = "DataMind Analytics"
	startupHub      = "StartupHub Inc"
	fullTime        = "full-time"
	remote          = "remote"
	hybrid          = "hybrid"
	onSite          = "on-site"
	industryTech    = "Technology"
	industryData    = "Data Analytics"
	industryFintech = "Financial Technology"
)

// Defaults returns the sample data seeders.
func Defaults(jobs repository.JobRepository, embedder llm.Embedder, pool *worker.Pool, log *zap.Logger) []Seeder {
	return []Seeder{
		NewJobsSeeder(jobs, embedder, pool, SampleCompanies(), SampleJobs(), log),
	}
}

func SampleCompanies() []job.Company {
	return []job.Company{
		{
			Name:        techCorp,
			Description: "Leading technology company specializing in web development and cloud solutions",
			Industry:    ptr(industryTech),
			CompanySize: ptr("large"),
			Location:    ptr("San Francisco, CA"),
			Website:     ptr("https://techcorp.com"),
		},
		{
			Name:        dataMind,
			Description: "Data analytics and machine learning company helping businesses make data-driven decisions",
			Industry:    ptr(industryData),
			CompanySize: ptr("medium"),
			Location:    ptr("New York, NY"),
			Website:     ptr("https://datamind.com"),
		},
		{
			Name:        startupHub,
			Description: "Fast-growing fintech startup revolutionizing digital payments",
			Industry:    ptr(industryFintech),
			CompanySize: ptr("startup"),
			Location:    ptr("Austin, TX"),
			Website:     ptr("https://startuphub.com"),
		},
	}
}

func SampleJobs() []SampleJob {
	return []SampleJob{
		{CompanyName: techCorp, Posting: job.Posting{
			Title: "Senior Full Stack Developer",
			Description: "We are seeking a Senior Full Stack Developer to join our dynamic team. You will develop and maintain " +
				"web applications using React, Node.js and TypeScript, design scalable systems, collaborate with " +
				"cross-functional teams and mentor junior developers.",
			Requirements: []string{
				"5+ years of web development experience",
				"Strong problem-solving skills",
				"Experience with agile methodologies",
				"Bachelor's degree in Computer Science or equivalent",
			},
			RequiredSkills:  []string{"JavaScript", "React", "Node.js", "HTML", "CSS"},
			PreferredSkills: []string{"React", "Node.js", "TypeScript", "PostgreSQL", "AWS", "Docker"},
			Location:        ptr("San Francisco, CA"),
			JobType:         ptr(fullTime),
			WorkArrangement: ptr(remote),
			SalaryMin:       ptr(120000),
			SalaryMax:       ptr(180000),
			ExperienceLevel: job.LevelSenior,
			Industry:        ptr(industryTech),
			IsActive:        true,
		}},
		{CompanyName: dataMind, Posting: job.Posting{
			Title: "Machine Learning Engineer",
			Description: "Join our ML team to build and deploy machine learning models that power our data analytics " +
				"platform. You will work with large datasets, optimize model performance and build ML pipelines.",
			Requirements: []string{
				"3+ years of ML experience",
				"Strong Python programming skills",
				"Experience with ML frameworks like TensorFlow or PyTorch",
				"Understanding of statistical methods",
			},
			RequiredSkills:  []string{"Python", "Machine Learning", "TensorFlow", "Statistics"},
			PreferredSkills: []string{"Python", "TensorFlow", "PyTorch", "AWS", "Docker", "Kubernetes"},
			Location:        ptr("New York, NY"),
			JobType:         ptr(fullTime),
			WorkArrangement: ptr(hybrid),
			SalaryMin:       ptr(110000),
			SalaryMax:       ptr(160000),
			ExperienceLevel: job.LevelMid,
			Industry:        ptr(industryData),
			IsActive:        true,
		}},
		{CompanyName: startupHub, Posting: job.Posting{
			Title: "Frontend Developer",
			Description: "Looking for a passionate frontend developer to build the next generation of fintech " +
				"applications. You will build responsive interfaces, work with designers and backend developers " +
				"and optimize for performance and accessibility.",
			Requirements: []string{
				"2+ years of frontend development experience",
				"Strong JavaScript and React skills",
				"Experience with responsive design",
				"Understanding of web performance optimization",
			},
			RequiredSkills:  []string{"React", "JavaScript", "HTML", "CSS"},
			PreferredSkills: []string{"React", "TypeScript", "Tailwind CSS", "Next.js", "Git"},
			Location:        ptr("Austin, TX"),
			JobType:         ptr(fullTime),
			WorkArrangement: ptr(onSite),
			SalaryMin:       ptr(80000),
			SalaryMax:       ptr(120000),
			ExperienceLevel: job.LevelMid,
			Industry:        ptr(industryFintech),
			IsActive:        true,
		}},
		{CompanyName: techCorp, Posting: job.Posting{
			Title: "DevOps Engineer",
			Description: "We're looking for a DevOps Engineer to scale our infrastructure and improve deployment " +
				"processes. You will manage AWS infrastructure, implement CI/CD pipelines and automate deployments.",
			Requirements: []string{
				"3+ years of DevOps or Infrastructure experience",
				"Experience with cloud platforms (AWS, GCP, or Azure)",
				"Knowledge of containerization technologies",
				"Strong scripting skills",
			},
			RequiredSkills:  []string{"AWS", "Docker", "CI/CD", "Linux"},
			PreferredSkills: []string{"AWS", "Docker", "Kubernetes", "Jenkins", "Terraform", "Python"},
			Location:        ptr("San Francisco, CA"),
			JobType:         ptr(fullTime),
			WorkArrangement: ptr(remote),
			SalaryMin:       ptr(100000),
			SalaryMax:       ptr(150000),
			ExperienceLevel: job.LevelMid,
			Industry:        ptr(industryTech),
			IsActive:        true,
		}},
		{CompanyName: dataMind, Posting: job.Posting{
			Title: "Data Scientist",
			Description: "Join our data science team to extract insights from large datasets and drive business " +
				"decisions through predictive modeling and statistical analysis.",
			Requirements: []string{
				"Master's degree in Statistics, Math, or related field",
				"2+ years of data science experience",
				"Strong analytical and statistical skills",
				"Experience with data visualization tools",
			},
			RequiredSkills:  []string{"Python", "SQL", "Statistics", "Data Analysis"},
			PreferredSkills: []string{"Python", "R", "SQL", "Pandas", "NumPy", "Matplotlib", "Tableau"},
			Location:        ptr("New York, NY"),
			JobType:         ptr(fullTime),
			WorkArrangement: ptr(hybrid),
			SalaryMin:       ptr(95000),
			SalaryMax:       ptr(140000),
			ExperienceLevel: job.LevelMid,
			Industry:        ptr(industryData),
			IsActive:        true,
		}},
	}
}

func ptr[T any](v T) *T { return &v }
