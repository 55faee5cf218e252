package learn

import "time"

// FallbackQuiz returns the built-in quiz served when generation fails.
func FallbackQuiz() []QuizQuestion {
	return []QuizQuestion{
		{
			Question: "What is compound interest?",
			Options: []string{
				"Interest earned only on the principal amount",
				"Interest earned on both principal and accumulated interest",
				"A fixed interest rate that never changes",
				"Interest paid only at the end of a loan term",
			},
			CorrectAnswer: 1,
			Explanation:   "Compound interest is interest earned on both your initial principal and previously accumulated interest, allowing your money to grow exponentially over time.",
		},
		{
			Question: "Which investment typically carries the highest risk?",
			Options: []string{
				"Government bonds",
				"Certificates of deposit",
				"Cryptocurrency",
				"Blue-chip stocks",
			},
			CorrectAnswer: 2,
			Explanation:   "Cryptocurrency is generally considered the riskiest due to its high volatility and lack of regulation compared to traditional investments.",
		},
		{
			Question: "What is diversification in investing?",
			Options: []string{
				"Putting all your money in one successful stock",
				"Spreading investments across different assets",
				"Only investing in real estate",
				"Keeping all money in savings accounts",
			},
			CorrectAnswer: 1,
			Explanation:   "Diversification reduces risk by spreading investments across different assets, sectors, or geographical locations.",
		},
		{
			Question: "What is a good first step in creating a budget?",
			Options: []string{
				"Taking out a loan",
				"Buying stocks",
				"Tracking expenses for a month",
				"Opening multiple credit cards",
			},
			CorrectAnswer: 2,
			Explanation:   "Tracking expenses helps you understand your spending patterns and identify areas where you can save money.",
		},
		{
			Question: "What is an emergency fund?",
			Options: []string{
				"Money for vacation",
				"Retirement savings",
				"3-6 months of living expenses saved",
				"Investment in stocks",
			},
			CorrectAnswer: 2,
			Explanation:   "An emergency fund typically consists of 3-6 months of living expenses saved for unexpected situations.",
		},
		{
			Question: "What is a credit score primarily based on?",
			Options: []string{
				"Your salary",
				"Your education level",
				"Your credit history and payment behavior",
				"Your bank balance",
			},
			CorrectAnswer: 2,
			Explanation:   "Credit scores are primarily based on your credit history, including payment history, credit utilization, and length of credit history.",
		},
		{
			Question: "What is a 401(k)?",
			Options: []string{
				"A type of loan",
				"A retirement savings plan",
				"A credit card",
				"A government bond",
			},
			CorrectAnswer: 1,
			Explanation:   "A 401(k) is an employer-sponsored retirement savings plan that offers tax advantages.",
		},
		{
			Question: "What is inflation?",
			Options: []string{
				"Rising stock prices",
				"Increasing bank interest rates",
				"General increase in prices over time",
				"Growth in GDP",
			},
			CorrectAnswer: 2,
			Explanation:   "Inflation is the general increase in prices of goods and services over time, reducing purchasing power.",
		},
		{
			Question: "What is a mutual fund?",
			Options: []string{
				"A type of bank account",
				"A collection of stocks/bonds managed professionally",
				"A government savings bond",
				"A type of credit card",
			},
			CorrectAnswer: 1,
			Explanation:   "A mutual fund is a professionally managed investment vehicle that pools money from multiple investors.",
		},
		{
			Question: "What is the purpose of insurance?",
			Options: []string{
				"To make money",
				"To protect against financial losses",
				"To avoid taxes",
				"To increase savings",
			},
			CorrectAnswer: 1,
			Explanation:   "Insurance provides financial protection against potential losses or damages.",
		},
	}
}

// FallbackQuotes returns the built-in quote set.
func FallbackQuotes() []Quote {
	return []Quote{
		{Text: "The best investment you can make is in yourself.", Author: "Warren Buffett"},
		{Text: "Don't work for money; make money work for you.", Author: "Robert Kiyosaki"},
		{Text: "Financial freedom is available to those who learn about it and work for it.", Author: "Robert Kiyosaki"},
	}
}

// FallbackBlogs returns the built-in blog set, dated today.
func FallbackBlogs() []Blog {
	date := time.Now().Format("Jan 2, 2006")
	return []Blog{
		{
			Title:  "Understanding Market Volatility: A Guide for New Investors",
			URL:    "https://www.bloomberg.com/markets",
			Source: "Bloomberg",
			Date:   date,
		},
		{
			Title:  "The Future of Digital Banking: What to Expect",
			URL:    "https://www.forbes.com/money",
			Source: "Forbes",
			Date:   date,
		},
		{
			Title:  "Sustainable Investing: A Guide for Beginners",
			URL:    "https://www.reuters.com/markets",
			Source: "Reuters",
			Date:   date,
		},
	}
}
