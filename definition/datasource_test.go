package definition

import "testing"

func TestDataSource_Variant(t *testing.T) {
	tests := []struct {
		name string
		def  DataSource
		want DataSourceVariant
	}{
		{"Function", DataSource{Function: &Function{Handler: "src/notes.main"}}, Lambda},
		{"Table", DataSource{Table: &Table{TableName: "notes"}}, DynamoDB},
		{"RDS", DataSource{RDS: &RDS{ClusterARN: "arn:aws:rds:us-east-1:123456789012:cluster:db"}}, Rds},
		{"HTTP", DataSource{HTTP: &HTTP{Endpoint: "https://example.com"}}, Http},
		{
			// First set field wins, in priority order.
			"FunctionBeforeTable",
			DataSource{
				Function: &Function{Handler: "src/notes.main"},
				Table:    &Table{TableName: "notes"},
			},
			Lambda,
		},
		{
			"TableBeforeHTTP",
			DataSource{
				Table: &Table{TableName: "notes"},
				HTTP:  &HTTP{Endpoint: "https://example.com"},
			},
			DynamoDB,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.def.Variant()
			if err != nil {
				t.Fatalf("Variant() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Variant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDataSource_Variant_empty(t *testing.T) {
	_, err := DataSource{}.Variant()
	if _, ok := err.(AmbiguousDefinitionError); !ok {
		t.Errorf("Variant() error = %v, want AmbiguousDefinitionError", err)
	}
}
