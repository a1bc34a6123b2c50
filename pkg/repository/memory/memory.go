package memory

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
)

type Memory struct {
	submission       *submissionRepository
	settings         *settingsRepository
	personalOverview *singleton[model.PersonalOverview]
	contactInfo      *singleton[model.ContactInfo]
	experience       *collection[model.Experience]
	testimonial      *collection[model.Testimonial]
	skill            *collection[model.SkillCategory]
	hobby            *collection[model.Hobby]
	adminUser        *adminUserRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		submission:       newSubmissionRepository(),
		settings:         newSettingsRepository(),
		personalOverview: newPersonalOverviewStore(),
		contactInfo:      newContactInfoStore(),
		experience:       newExperienceCollection(),
		testimonial:      newTestimonialCollection(),
		skill:            newSkillCollection(),
		hobby:            newHobbyCollection(),
		adminUser:        newAdminUserRepository(),
	}
}

func (m *Memory) Submission() interfaces.SubmissionRepository {
	return m.submission
}

func (m *Memory) Settings() interfaces.SettingsRepository {
	return m.settings
}

func (m *Memory) PersonalOverview() interfaces.PersonalOverviewRepository {
	return m.personalOverview
}

func (m *Memory) ContactInfo() interfaces.ContactInfoRepository {
	return m.contactInfo
}

func (m *Memory) Experience() interfaces.ExperienceRepository {
	return m.experience
}

func (m *Memory) Testimonial() interfaces.TestimonialRepository {
	return m.testimonial
}

func (m *Memory) Skill() interfaces.SkillRepository {
	return m.skill
}

func (m *Memory) Hobby() interfaces.HobbyRepository {
	return m.hobby
}

func (m *Memory) AdminUser() interfaces.AdminUserRepository {
	return m.adminUser
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}
