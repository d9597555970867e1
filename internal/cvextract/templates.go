package cvextract

import "github.com/jonathan/portfolio-generator/internal/types"

// template returns a fresh copy of the archetype's record. Name and email are
// filled by the caller.
func template(a Archetype) types.PortfolioRecord {
	switch a {
	case Designer:
		return designerTemplate()
	case Developer:
		return developerTemplate()
	case Manager:
		return managerTemplate()
	default:
		return genericTemplate()
	}
}

func designerTemplate() types.PortfolioRecord {
	return types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Title:    "UI/UX Designer",
			Bio:      "Creative designer with experience in user interface and experience design.",
			Location: "San Francisco, CA",
		},
		Experience: []types.Experience{{
			Company:     "Design Studio Inc.",
			Position:    "Senior UI/UX Designer",
			Duration:    "2020 - Present",
			Description: "Lead designer for multiple client projects, creating intuitive user interfaces.",
			Skills:      []string{"Figma", "Sketch", "User Research", "Prototyping"},
		}},
		Education: []types.Education{{
			Institution: "Design University",
			Degree:      "Bachelor of Fine Arts",
			Duration:    "2016 - 2020",
			Description: "Specialized in Digital Design and User Experience",
		}},
		Skills: types.Skills{
			Technical: skillList(types.CategoryTechnical, "HTML", "CSS", "JavaScript"),
			Design:    skillList(types.CategoryDesign, "UI Design", "UX Research", "Wireframing", "Prototyping"),
			Soft:      skillList(types.CategorySoft, "Creativity", "Communication", "Collaboration"),
			Languages: skillList(types.CategoryLanguages, "English", "Spanish"),
		},
		Projects: []types.Project{{
			Name:         "E-commerce Redesign",
			Description:  "Complete redesign of shopping experience for major retailer",
			Technologies: []string{"Figma", "Adobe XD"},
			ProjectURL:   "https://example.com/projects/ecommerce",
			Source:       types.SourceCV,
		}},
		SocialLinks: types.SocialLinks{},
	}
}

func developerTemplate() types.PortfolioRecord {
	return types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Title:    "Full Stack Developer",
			Bio:      "Experienced developer with expertise in JavaScript frameworks and backend systems.",
			Location: "New York, NY",
		},
		Experience: []types.Experience{{
			Company:     "Tech Solutions Inc.",
			Position:    "Senior Developer",
			Duration:    "2019 - Present",
			Description: "Developed and maintained web applications using modern technologies.",
			Skills:      []string{"JavaScript", "React", "Node.js", "AWS"},
		}},
		Education: []types.Education{{
			Institution: "Tech University",
			Degree:      "Computer Science",
			Duration:    "2015 - 2019",
		}},
		Skills: types.Skills{
			Technical: skillList(types.CategoryTechnical, "JavaScript", "TypeScript", "React", "Node.js", "SQL", "AWS"),
			Design:    skillList(types.CategoryDesign, "Responsive Design"),
			Soft:      skillList(types.CategorySoft, "Problem Solving", "Teamwork", "Communication"),
			Languages: skillList(types.CategoryLanguages, "English"),
		},
		Projects: []types.Project{{
			Name:         "Task Management App",
			Description:  "Full-stack application for team task management",
			Technologies: []string{"React", "Node.js", "MongoDB"},
			ProjectURL:   "https://github.com/username/task-manager",
			Source:       types.SourceCV,
		}},
		SocialLinks: types.SocialLinks{},
	}
}

func genericTemplate() types.PortfolioRecord {
	return types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Title:    "Professional",
			Bio:      "Experienced professional with diverse skills and accomplishments.",
			Location: "Chicago, IL",
		},
		Experience: []types.Experience{{
			Company:     "Professional Services Inc.",
			Position:    "Senior Consultant",
			Duration:    "2018 - Present",
			Description: "Provided expert services to clients across various industries.",
			Skills:      []string{"Project Management", "Client Relations", "Strategic Planning"},
		}},
		Education: []types.Education{{
			Institution: "State University",
			Degree:      "Business Administration",
			Duration:    "2014 - 2018",
		}},
		Skills: types.Skills{
			Technical: skillList(types.CategoryTechnical, "Microsoft Office", "Data Analysis"),
			Design:    skillList(types.CategoryDesign, "Presentation Design"),
			Soft:      skillList(types.CategorySoft, "Communication", "Leadership", "Organization"),
			Languages: skillList(types.CategoryLanguages, "English"),
		},
		Projects: []types.Project{{
			Name:         "Business Process Improvement",
			Description:  "Optimized workflows for increased efficiency",
			Technologies: []string{"Process Mapping", "Six Sigma"},
			Source:       types.SourceCV,
		}},
		SocialLinks: types.SocialLinks{},
	}
}

// managerTemplate is the generic record with a management headline.
func managerTemplate() types.PortfolioRecord {
	rec := genericTemplate()
	rec.BasicInfo.Title = "Manager"
	rec.BasicInfo.Bio = "Experienced manager leading teams and delivering results across various industries."
	rec.Experience[0].Position = "Senior Manager"
	return rec
}
