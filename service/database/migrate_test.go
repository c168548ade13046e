package database_test

import (
	"testing"

	"inspection-service/service/database"
	"inspection-service/service/models"
	"inspection-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrate_CreatesTables(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	for _, model := range []interface{}{
		&models.Product{},
		&models.InspectionPlan{},
		&models.InspectionPlanRevision{},
		&models.Supplier{},
		&models.SupplierEvaluation{},
		&models.SupplierAudit{},
		&models.Inspection{},
		&models.RNC{},
		&models.RNCHistory{},
		&models.SystemConfig{},
	} {
		assert.True(t, testDB.DB.Migrator().HasTable(model), "%T", model)
	}

	// 重复迁移不报错
	require.NoError(t, database.AutoMigrate(testDB.DB))
}

func TestInitializeData_KeepsExistingValues(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()
	db := testDB.DB

	defaults := []models.SystemConfig{
		{Key: "sampling.default_level", Value: "II"},
		{Key: "rnc.due_days", Value: "30"},
	}
	require.NoError(t, database.InitializeData(db, defaults))

	require.NoError(t, db.Model(&models.SystemConfig{}).
		Where("key = ?", "rnc.due_days").
		Update("value", "15").Error)

	require.NoError(t, database.InitializeData(db, defaults))

	var configs []models.SystemConfig
	require.NoError(t, db.Order("key").Find(&configs).Error)
	require.Len(t, configs, 2)
	assert.Equal(t, "15", configs[0].Value)
	assert.Equal(t, models.DefaultEnvironment, configs[0].Environment)
	assert.Equal(t, "II", configs[1].Value)
}

func TestEnsureSchema_SkipsNonPostgres(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	assert.NoError(t, database.EnsureSchema(testDB.DB, "inspection"))
	assert.NoError(t, database.EnsureSchema(testDB.DB, ""))
}
