package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ResultsColumns holds the columns for the "results" table.
	ResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "session_id", Type: field.TypeString},
		{Name: "direction", Type: field.TypeString},
		{Name: "range_start", Type: field.TypeInt},
		{Name: "range_end", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "wrong", Type: field.TypeInt},
		{Name: "percentage", Type: field.TypeInt},
		{Name: "mistakes", Type: field.TypeJSON},
		{Name: "started_at", Type: field.TypeTime, Nullable: true},
		{Name: "finished_at", Type: field.TypeTime},
	}
	// ResultsTable holds the schema information for the "results" table.
	ResultsTable = &schema.Table{
		Name:       "results",
		Columns:    ResultsColumns,
		PrimaryKey: []*schema.Column{ResultsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "result_finished_at",
				Unique:  false,
				Columns: []*schema.Column{ResultsColumns[11]},
			},
		},
	}

	// CredentialsColumns holds the columns for the "credentials" table.
	CredentialsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "user_id", Type: field.TypeString},
		{Name: "email", Type: field.TypeString},
		{Name: "username", Type: field.TypeString},
		{Name: "access", Type: field.TypeString, Size: 2147483647},
		{Name: "refresh", Type: field.TypeString, Size: 2147483647},
		{Name: "api_url", Type: field.TypeString},
		{Name: "saved_at", Type: field.TypeTime},
	}
	// CredentialsTable holds the schema information for the "credentials" table.
	CredentialsTable = &schema.Table{
		Name:       "credentials",
		Columns:    CredentialsColumns,
		PrimaryKey: []*schema.Column{CredentialsColumns[0]},
	}

	tables = []*schema.Table{
		ResultsTable,
		CredentialsTable,
	}
)
