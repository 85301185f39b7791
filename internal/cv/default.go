package cv

import "encoding/json"

// Default 返回新用户的种子文档。
// 三个内建区块固定占 1..3 位且全部启用。
func Default() CVData {
	return CVData{
		PersonalDetails: PersonalDetails{
			FullName: "Kongkin Voeun",
			Position: "Back-End Developer",
			AboutMe: "Backend Developer with strong expertise in Java 17, Spring Boot 3, " +
				"PostgreSQL 17, and CI/CD automation using Jenkins. Skilled in building " +
				"scalable systems, optimizing databases, and providing system consulting " +
				"for enterprise solutions.",
			Phone:    "+855 962969711",
			Email:    "kongkin928@gmail.com",
			Github:   "https://github.com/VKongkin",
			Linkedin: "https://www.linkedin.com/in/Kongkin Voeun",
			Location: "Phnom Penh",
		},
		Experience: []Experience{
			{
				Title:     "Backend Developer",
				Company:   "Winwin Plus Solution & Customer Service - DG Group",
				Location:  "Phnom Penh, Cambodia",
				StartDate: "June 1, 2025",
				EndDate:   "Present",
				Level:     "Senior Level",
				Type:      "Working Experience",
				Description: "<p><strong>Key Skills</strong>: Java 17, Maven 3.9.9, Spring Boot 3, " +
					"Ubuntu (Server Management & Deployment), PostgreSQL 17 (Views & Functions), " +
					"Nginx Proxy Manager, Jenkins (CI/CD), System Consulting</p>" +
					"<p><strong>Responsibilities & Experience Highlights</strong>:</p>" +
					"<ul><li><strong>Backend Architecture & Development</strong><br>" +
					"Designed and developed scalable, high-performance backend services and " +
					"RESTful APIs using <strong>Java 17</strong> and <strong>Spring Boot 3</strong>, " +
					"adhering to clean architecture principles, modular design, and SOLID practices.</li></ul>",
			},
		},
		Education: []Education{
			{
				Degree:      "Bachelor of Information Technology",
				Institution: "Build Bright University",
				Location:    "Phnom Penh, Cambodia",
				StartDate:   "November 1, 2019",
				EndDate:     "March 11, 2025",
			},
		},
		Training: []Training{
			{Title: "IT Security Awareness", Date: "November 20, 2023"},
			{Title: "Basic Life Support (BLS)", Date: "September 15, 2023"},
		},
		Skills: []Skill{
			{Name: "Adobe Photoshop", Level: 70},
			{Name: "MS Office", Level: 90},
			{Name: "MS Teams", Level: 90},
		},
		Languages: []Language{
			{Name: "English", Level: 50},
			{Name: "Khmer", Level: 100},
		},
		References: []Reference{
			{
				Name:     "Cheng Mich",
				Position: "IT Manager at Build Bright University",
				Phone:    "+855 86544556",
				Email:    "cheng_mich@bbu.edu.kh",
			},
		},
		CustomSections: []CustomSection{},
		SectionOrder: []CVSection{
			{ID: "experience", Type: SectionExperience, Title: "Experience", Order: 1, Enabled: true},
			{ID: "education", Type: SectionEducation, Title: "Education", Order: 2, Enabled: true},
			{ID: "references", Type: SectionReferences, Title: "References", Order: 3, Enabled: true},
		},
	}
}

// Decode 解析外部传入的 CVData JSON。
// 无法解析时回落到种子文档而不是报错（缓存/查询参数里的脏数据不应中断渲染）。
func Decode(raw []byte) CVData {
	if len(raw) == 0 {
		return Default()
	}
	var data CVData
	if err := json.Unmarshal(raw, &data); err != nil {
		return Default()
	}
	if data.SectionOrder == nil && data.CustomSections == nil && data.PersonalDetails == (PersonalDetails{}) {
		// 合法 JSON 但完全不是 CVData 的形状，同样回落。
		return Default()
	}
	return data
}

// Encode 序列化聚合，persist/cache 均使用该表示。
func Encode(data CVData) ([]byte, error) {
	return json.Marshal(data)
}
