package db

import (
	"context"
	"database/sql"
)

const schemaMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    provider_id text NOT NULL,
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    role text NOT NULL DEFAULT 'USER',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique
ON users (email);

CREATE TABLE IF NOT EXISTS tokens (
    email text PRIMARY KEY,
    refresh_token text NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS tokens_refresh_token_idx
ON tokens (refresh_token);

CREATE TABLE IF NOT EXISTS financial_products (
    id bigserial PRIMARY KEY,
    product_type text NOT NULL,
    disclosure_month text,
    company_name text NOT NULL,
    product_name text NOT NULL,
    join_way text,
    maturity_interest_rate text,
    special_condition text,
    join_deny integer,
    join_member text,
    etc_note text,
    max_limit integer,
    bank_group_no text,
    status text NOT NULL DEFAULT 'ACTIVE'
);

CREATE TABLE IF NOT EXISTS financial_product_options (
    id bigserial PRIMARY KEY,
    financial_product_id bigint NOT NULL REFERENCES financial_products(id) ON DELETE CASCADE,
    interest_rate_type text,
    savings_term integer NOT NULL,
    interest_rate text,
    maximum_preferred_interest_rate text
);

CREATE INDEX IF NOT EXISTS financial_product_options_product_idx
ON financial_product_options (financial_product_id);

CREATE TABLE IF NOT EXISTS cma (
    id bigserial PRIMARY KEY,
    company_name text NOT NULL,
    product_name text NOT NULL,
    cma_type text,
    maturity_interest_rate text,
    special_condition text,
    status text NOT NULL DEFAULT 'ACTIVE'
);

CREATE TABLE IF NOT EXISTS policy_infos (
    id bigserial PRIMARY KEY,
    policy_name text NOT NULL,
    policy_intro text,
    host_dep text,
    policy_url text,
    status text NOT NULL DEFAULT 'ACTIVE'
);

CREATE TABLE IF NOT EXISTS posts (
    id bigserial PRIMARY KEY,
    content_type text NOT NULL,
    title text NOT NULL DEFAULT '',
    url text NOT NULL UNIQUE,
    status text NOT NULL DEFAULT 'ACTIVE'
);

CREATE TABLE IF NOT EXISTS financial_product_bookmarks (
    id bigserial PRIMARY KEY,
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    financial_product_id bigint NOT NULL REFERENCES financial_products(id) ON DELETE CASCADE,
    CONSTRAINT financial_product_bookmarks_unique UNIQUE (user_id, financial_product_id)
);

CREATE TABLE IF NOT EXISTS cma_bookmarks (
    id bigserial PRIMARY KEY,
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    cma_id bigint NOT NULL REFERENCES cma(id) ON DELETE CASCADE,
    CONSTRAINT cma_bookmarks_unique UNIQUE (user_id, cma_id)
);

CREATE TABLE IF NOT EXISTS policy_info_bookmarks (
    id bigserial PRIMARY KEY,
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    policy_info_id bigint NOT NULL REFERENCES policy_infos(id) ON DELETE CASCADE,
    CONSTRAINT policy_info_bookmarks_unique UNIQUE (user_id, policy_info_id)
);

CREATE TABLE IF NOT EXISTS post_bookmarks (
    id bigserial PRIMARY KEY,
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    post_id bigint NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    CONSTRAINT post_bookmarks_unique UNIQUE (user_id, post_id)
);
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
