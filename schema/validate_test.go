package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabular/engine"
)

// ============================================================================
// FOREIGN DATASETS — Discovery and validation of non-user CSVs
// ============================================================================

var jiraCSV = []byte("Issue Key,Summary,Issue Type,Status,Priority,Assignee,Reporter,Component,Sprint,Story Points,Original Estimate (hours),Time Spent (hours),Created,Resolved,Labels\nPROJ-001,User login fails on Safari,Bug,Done,P1 - Critical,Alice Chen,David Kim,Authentication,Sprint 1,3,8,6,2025-11-01,2025-11-05,backend;urgent\nPROJ-002,Implement OAuth2 flow,Story,Done,P2 - High,Bob Patel,Sarah Lee,Authentication,Sprint 1,8,16,18,2025-11-01,2025-11-12,backend;security\nPROJ-003,Update API documentation,Task,Done,P3 - Medium,Charlie Wong,Charlie Wong,Documentation,Sprint 1,2,4,3,2025-11-02,2025-11-06,docs\nPROJ-004,Design new dashboard layout,Story,Done,P2 - High,Diana Reyes,Sarah Lee,Dashboard,Sprint 1,5,12,10,2025-11-03,2025-11-10,frontend;design\nPROJ-005,Fix memory leak in data service,Bug,Done,P1 - Critical,Alice Chen,Bob Patel,Data Pipeline,Sprint 1,5,10,14,2025-11-04,2025-11-11,backend;performance\nPROJ-006,Add export to CSV feature,Story,Done,P3 - Medium,Eve Johnson,David Kim,Dashboard,Sprint 2,3,8,7,2025-11-15,2025-11-20,frontend\n")

var ecommerceCSV = []byte("Order ID,Customer Name,Product,Category,Sub-Category,Region,City,Order Date,Ship Date,Quantity,Unit Price,Discount,Revenue,Shipping Cost,Currency\nORD-10001,James Wilson,Wireless Mouse,Technology,Accessories,North America,New York,2025-08-01,2025-08-03,2,29.99,0.00,59.98,5.99,USD\nORD-10002,Maria Santos,Office Chair,Furniture,Chairs,South America,São Paulo,2025-08-01,2025-08-07,1,349.99,0.10,314.99,45.00,BRL\nORD-10003,Yuki Tanaka,Notebook Set,Office Supplies,Paper,Asia Pacific,Tokyo,2025-08-02,2025-08-04,5,12.50,0.00,62.50,8.00,JPY\nORD-10004,Hans Mueller,Standing Desk,Furniture,Desks,Europe,Berlin,2025-08-02,2025-08-09,1,599.00,0.15,509.15,0.00,EUR\nORD-10005,Priya Sharma,Laser Printer,Technology,Machines,Asia Pacific,Mumbai,2025-08-03,2025-08-06,1,299.99,0.05,284.99,25.00,INR\nORD-10006,James Wilson,USB Hub,Technology,Accessories,North America,New York,2025-08-03,2025-08-05,3,19.99,0.00,59.97,3.99,USD\n")

var hrCSV = []byte("Employee ID,Full Name,Department,Job Title,Level,Location,Hire Date,Annual Salary,Bonus Percent,Performance Score,Manager,Employment Status\nEMP-001,Alice Johnson,Engineering,Senior Engineer,L5,San Francisco,2019-03-15,185000,15.0,4.2,Bob Smith,Active\nEMP-002,Bob Smith,Engineering,Engineering Manager,L6,San Francisco,2017-06-01,210000,20.0,4.5,Carol Davis,Active\nEMP-003,Carol Davis,Engineering,VP Engineering,L7,San Francisco,2015-01-10,280000,25.0,4.8,David Lee,Active\nEMP-004,Diana Chen,Product,Product Manager,L5,New York,2020-07-20,165000,15.0,4.0,Edward Park,Active\nEMP-005,Edward Park,Product,Senior PM,L6,New York,2018-02-14,195000,18.0,4.3,Frank White,Active\nEMP-006,Frank White,Product,VP Product,L7,New York,2016-09-01,260000,22.0,4.6,Grace Kim,Active\n")

func discoveredTypes(t *testing.T, data []byte) map[string]ColumnType {
	t.Helper()
	cfg, err := DiscoverFromCSV(data)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Rows)

	types := make(map[string]ColumnType, len(cfg.Columns))
	for _, c := range cfg.Columns {
		types[c.Key] = c.Type
	}
	return types
}

func headerKeys(t *testing.T, data []byte) []string {
	t.Helper()
	cfg, err := DiscoverFromCSV(data)
	require.NoError(t, err)
	return cfg.Keys()
}

func TestDiscoverJira(t *testing.T) {
	types := discoveredTypes(t, jiraCSV)
	assert.Equal(t, TypeString, types["issue_key"])
	assert.Equal(t, TypeString, types["priority"])
	assert.Equal(t, TypeInt, types["story_points"])
	assert.Equal(t, TypeString, types["created"])
}

func TestDiscoverEcommerce(t *testing.T) {
	types := discoveredTypes(t, ecommerceCSV)
	assert.Equal(t, TypeInt, types["quantity"])
	assert.Equal(t, TypeFloat, types["unit_price"])
	assert.Equal(t, TypeFloat, types["discount"])
	assert.Equal(t, TypeFloat, types["revenue"])
	assert.Equal(t, TypeString, types["sub_category"])
}

func TestDiscoverHR(t *testing.T) {
	types := discoveredTypes(t, hrCSV)
	assert.Equal(t, TypeString, types["employee_id"])
	assert.Equal(t, TypeString, types["level"])
	assert.Equal(t, TypeInt, types["annual_salary"])
	assert.Equal(t, TypeFloat, types["bonus_percent"])
	assert.Equal(t, TypeFloat, types["performance_score"])
}

func TestValidateForeignHeaders(t *testing.T) {
	t.Run("NoOverlap", func(t *testing.T) {
		for _, data := range [][]byte{jiraCSV, hrCSV} {
			_, _, err := Validate(headerKeys(t, data))
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
		}
	})

	t.Run("CategoryOnly", func(t *testing.T) {
		present, index, err := Validate(headerKeys(t, ecommerceCSV))
		require.NoError(t, err)
		assert.Equal(t, engine.NewColumnSet(engine.ColumnCategory), present)
		assert.Equal(t, 3, index[engine.ColumnCategory])

		cfg, err := DiscoverFromCSV(ecommerceCSV)
		require.NoError(t, err)
		assert.NoError(t, CheckTypes(cfg))
	})
}
