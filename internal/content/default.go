package content

func defaultData() Data {
	return Data{
		Identity: Identity{
			Name:      "M. Vivek Kaushik",
			Email:     "vivekmanepalli08@gmail.com",
			Phone:     "+91 62816 72715",
			GitHub:    "https://github.com/Kaushik9989",
			LinkedIn:  "https://www.linkedin.com/in/vivek-kaushik-manepalli-119422263/",
			Portfolio: "https://portfolio-kaushik9989s-projects.vercel.app/",
			Location:  "India",
		},
		Headline: "Vivek Kaushik M",
		Intro: Intro{
			Lead:     "I build fast, secure, and scalable web applications. Recently, I engineered an enterprise‑ready parcel locker system at ",
			Emphasis: "Droppoint Systems",
			Tail:     " — with OTP access, QR flows, and deployment.",
		},
		Actions: []Link{
			{Label: "My Internships", Href: "#experience"},
			{Label: "View Projects", Href: "#projects"},
		},
		Spotlight: Spotlight{
			Kicker:  "Internship Spotlight",
			Title:   "Droppoint Systems",
			Caption: "Built secure parcel locker platform →",
			Target:  "#experience",
		},
		Experience: []Experience{
			{
				Organization: "Droppoint Systems Private Limited",
				Role:         "Web Developer Intern",
				Period:       "Jun 2025 – Aug 2025 (T-Hub, Hyderabad)",
				Highlight:    true,
				Bullets: []string{
					"Built a secure full‑stack digital parcel locker system with OTP‑based access and real‑time tracking.",
					"Developed RESTful APIs in Node.js/Express for auth, locker reservation, monitoring; integrated QR generation & SMS‑OTP.",
					"Crafted responsive UIs using React, Bootstrap, and EJS; deployed services to AWS.",
					"Impact: streamlined enterprise parcel workflows and reduced manual intervention; deployment‑ready for production.",
				},
				Links: []Link{
					{Label: "demo.droppoint.in", Href: "https://demo.droppoint.in"},
					{Label: "locker.droppoint.in", Href: "https://locker.droppoint.in"},
				},
			},
		},
		Projects: []Project{
			{
				Title:       "Property Listing Platform (WanderLust)",
				Period:      "Jan – Feb 2025",
				Description: "Full‑stack real‑estate app (MERN) for creating, viewing, and managing property listings with image uploads and interactive maps.",
				Bullets: []string{
					"Session‑based auth with RBAC for owners & visitors.",
					"Interactive Map APIs for dynamic property locations.",
					"Responsive UI + RESTful APIs for seamless cross‑device performance.",
				},
				Links: []Link{{Label: "Live Demo", Href: "https://project-fullstack-odpq.onrender.com"}},
			},
			{
				Title:       "Stock Trading Platform (TradeTrack)",
				Period:      "Nov – Dec 2024",
				Description: "Zerodha‑inspired simulated trading with dashboards, watchlists, and portfolio tracking; modular & secure architecture.",
				Bullets: []string{
					"Real‑time market updates for a smooth trading UX.",
					"REST APIs for live data, order placement, and history.",
					"Scalable structure for maintainability & efficient data handling.",
				},
				Links: []Link{{Label: "GitHub", Href: "https://github.com/Kaushik9989/Stock-Trading-Platform"}},
			},
		},
		Education: []Education{
			{
				Institution: "Gokaraju Rangaraju College of Engineering & Technology",
				Credential:  "B.Tech in Information Technology",
				Period:      "2022 – Present",
				Meta:        "GPA: 8",
			},
			{
				Institution: "Narayana College (TSBIE)",
				Credential:  "Class 12th",
				Period:      "2020 – 2022",
				Meta:        "GPA: 9.81",
			},
			{
				Institution: "Little Flower School (CBSE)",
				Credential:  "Class 10th",
				Period:      "2020",
				Meta:        "GPA: 8.5",
			},
		},
		Skills: []SkillGroup{
			{Label: "Languages", Skills: []string{"Java (Proficient)", "Python", "JavaScript", "SQL", "C"}},
			{Label: "Technologies", Skills: []string{
				"Full‑Stack Web Development",
				"RESTful APIs",
				"MongoDB",
				"Express",
				"React",
				"Node.js",
				"AWS (Foundations)",
			}},
			{Label: "Tools", Skills: []string{"Git", "GitHub", "VS Code", "Postman", "MongoDB Compass", "Visual Studio", "Jupyter Notebook"}},
			{Label: "CS Fundamentals", Skills: []string{"DSA", "OOP", "Computer Networks", "DBMS", "Operating Systems"}},
		},
		Certifications: []string{
			"Automated Software Testing with Python – Udemy",
			"Full Stack Web Dev (MERN) – Apna College",
			"AWS Cloud Foundations – Amazon",
			"Cybersecurity – Cisco Networking Academy",
			"Linux Training – IIT Bombay (Spoken Tutorial)",
		},
	}
}
