package db

// Schema lists the application tables in version order.
var Schema = []Migration{
	{
		Version: 1,
		Name:    "create users",
		Statements: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				email VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL,
				name VARCHAR(255) NULL,
				handle VARCHAR(30) NULL UNIQUE,
				bio TEXT NULL,
				location VARCHAR(255) NULL,
				website VARCHAR(255) NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Version: 2,
		Name:    "create posts",
		Statements: []string{`
			CREATE TABLE IF NOT EXISTS posts (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				body TEXT NOT NULL,
				user_id BIGINT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_posts_user_id (user_id),
				INDEX idx_posts_created_at (created_at)
			)`,
		},
	},
	{
		Version: 3,
		Name:    "create refresh_tokens",
		Statements: []string{`
			CREATE TABLE IF NOT EXISTS refresh_tokens (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				user_id BIGINT NOT NULL,
				token_hash CHAR(64) NOT NULL,
				expires_at DATETIME NOT NULL,
				revoked TINYINT(1) NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE KEY uq_refresh_tokens_hash (token_hash),
				INDEX idx_refresh_tokens_user_id (user_id)
			)`,
		},
	},
}
