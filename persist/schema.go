package persist

// schemaSQL is the DDL for the authorship-graph export database, in the
// teacher's single-string-builder style (store/schema.go).
const schemaSQL = `
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revisions (
    id INTEGER PRIMARY KEY,
    page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
    commit_seq INTEGER NOT NULL,
    length INTEGER NOT NULL,
    original_adds INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS spam_revisions (
    page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
    revision_id INTEGER NOT NULL,
    PRIMARY KEY (page_id, revision_id)
);

CREATE TABLE IF NOT EXISTS words (
    id INTEGER PRIMARY KEY,
    page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    origin_revision_id INTEGER NOT NULL,
    latest_revision_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS word_inbound (
    word_id INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
    revision_id INTEGER NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS word_outbound (
    word_id INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
    revision_id INTEGER NOT NULL,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_revisions_page ON revisions(page_id);
CREATE INDEX IF NOT EXISTS idx_words_page ON words(page_id);
CREATE INDEX IF NOT EXISTS idx_word_inbound_word ON word_inbound(word_id);
CREATE INDEX IF NOT EXISTS idx_word_outbound_word ON word_outbound(word_id);
`
