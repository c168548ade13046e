/*
 * @module service/product/service_test
 * @description 产品服务单元测试
 */

package product

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"inspection-service/service/models"
	"inspection-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func setupService(t *testing.T) (*Service, *testutil.TestDataFactory) {
	t.Helper()
	testDB := testutil.NewTestDB()
	t.Cleanup(testDB.Close)
	return NewService(testDB.DB), testutil.NewTestDataFactory(testDB.DB)
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	p := &models.Product{
		Code:         " AF-BBQ-127 ",
		EAN:          "7899831312345",
		Description:  "Air Fryer Barbecue",
		Category:     "Cozinha",
		BusinessUnit: "kitchen_beauty",
		Voltages:     []string{"127V"},
	}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "AF-BBQ-127", p.Code)
	assert.Equal(t, models.BusinessUnitKitchenBeauty, p.BusinessUnit)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Code, got.Code)
	assert.Equal(t, []string{"127V"}, []string(got.Voltages))

	dup := &models.Product{Code: "AF-BBQ-127", Description: "x", Category: "y"}
	assert.ErrorIs(t, svc.Create(ctx, dup), ErrDuplicateCode)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	cases := []*models.Product{
		{Description: "sem código", Category: "c"},
		{Code: "A", Category: "c"},
		{Code: "A", Description: "d"},
		{Code: "A", Description: "d", Category: "c", BusinessUnit: "GARDEN"},
	}
	for _, p := range cases {
		assert.ErrorIs(t, svc.Create(ctx, p), ErrInvalidProduct)
	}

	p := &models.Product{Code: "B", Description: "d", Category: "c"}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, models.BusinessUnitNA, p.BusinessUnit)
}

func TestService_ListAndSearch(t *testing.T) {
	svc, factory := setupService(t)
	ctx := context.Background()

	factory.CreateProduct(func(p *models.Product) {
		p.Code = "AF-001"
		p.Description = "Air Fryer Preta"
	})
	factory.CreateProduct(func(p *models.Product) {
		p.Code = "FUR-002"
		p.Description = "Furadeira de impacto"
		p.Category = "Ferramentas"
		p.BusinessUnit = models.BusinessUnitDIY
	})
	factory.CreateProduct(func(p *models.Product) {
		p.Code = "LIQ-003"
		p.Description = "Liquidificador"
		p.EAN = "7890000000003"
	})

	items, total, err := svc.List(ctx, ListFilter{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)
	assert.Equal(t, "AF-001", items[0].Code)

	items, total, err = svc.List(ctx, ListFilter{BusinessUnit: "diy"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "FUR-002", items[0].Code)

	found, err := svc.Search(ctx, "air fryer")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AF-001", found[0].Code)

	found, err = svc.Search(ctx, "fur")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = svc.Search(ctx, "7890000000003")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "LIQ-003", found[0].Code)

	found, err = svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, factory := setupService(t)
	ctx := context.Background()

	a := factory.CreateProduct()
	b := factory.CreateProduct()

	updated, err := svc.Update(ctx, a.ID, &models.Product{
		Code:         a.Code,
		Description:  "Nova descrição",
		Category:     "Cozinha",
		BusinessUnit: models.BusinessUnitTech,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nova descrição", updated.Description)
	assert.Equal(t, a.CreatedAt.Unix(), updated.CreatedAt.Unix())

	_, err = svc.Update(ctx, a.ID, &models.Product{Code: b.Code, Description: "d", Category: "c"})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	plan := factory.CreateInspectionPlan(a.ID)
	assert.NotEmpty(t, plan.ID)
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrProductInUse)

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_ImportCSV(t *testing.T) {
	svc, factory := setupService(t)
	ctx := context.Background()

	factory.CreateProduct(func(p *models.Product) {
		p.Code = "EXIST-1"
		p.Description = "antigo"
	})

	csvData := strings.Join([]string{
		"code;ean;description;category;business_unit",
		"EXIST-1;789001;Atualizado;Cozinha;KITCHEN_BEAUTY",
		"NEW-1;789002;Ventilador;Conforto;MOTOR_COMFORT",
		"NEW-2;789003;Sem categoria",
		"NEW-3;789004;Parafusadeira;Ferramentas;GARDEN",
		"",
		"NEW-4;789005;Lâmpada;Iluminação",
	}, "\n")

	result, err := svc.ImportCSV(ctx, strings.NewReader(csvData), "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].Line)
	assert.Equal(t, "NEW-3", result.Errors[1].Code)

	existing, err := svc.GetByCode(ctx, "EXIST-1")
	require.NoError(t, err)
	assert.Equal(t, "Atualizado", existing.Description)

	lamp, err := svc.GetByCode(ctx, "NEW-4")
	require.NoError(t, err)
	assert.Equal(t, "Lâmpada", lamp.Description)
	assert.Equal(t, models.BusinessUnitNA, lamp.BusinessUnit)
}

func TestService_ImportCSVWindows1252(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	encoded, err := charmap.Windows1252.NewEncoder().String("CAF-1,789,Cafeteira Elétrica,Cozinha,KITCHEN_BEAUTY\n")
	require.NoError(t, err)

	result, err := svc.ImportCSV(ctx, bytes.NewReader([]byte(encoded)), EncodingWindows1252)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	p, err := svc.GetByCode(ctx, "CAF-1")
	require.NoError(t, err)
	assert.Equal(t, "Cafeteira Elétrica", p.Description)

	_, err = svc.ImportCSV(ctx, strings.NewReader(""), "ebcdic")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter([]byte("a;b;c\n")))
	assert.Equal(t, ',', detectDelimiter([]byte("a,b,c\n")))
	assert.Equal(t, ';', detectDelimiter([]byte("\n\na;b,c\n")))
	assert.Equal(t, ';', detectDelimiter(nil))
}
