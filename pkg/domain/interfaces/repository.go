package interfaces

import "context"

// Repository defines the interface for data persistence
type Repository interface {
	Submission() SubmissionRepository
	Settings() SettingsRepository
	PersonalOverview() PersonalOverviewRepository
	ContactInfo() ContactInfoRepository
	Experience() ExperienceRepository
	Testimonial() TestimonialRepository
	Skill() SkillRepository
	Hobby() HobbyRepository
	AdminUser() AdminUserRepository

	Ping(ctx context.Context) error
	Close() error
}
