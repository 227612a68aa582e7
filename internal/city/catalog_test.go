package city

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPutAndLookup(t *testing.T) {
	catalog := NewCatalog()
	catalog.Put(NewCity("Milano", "Italy"))
	catalog.Put(NewCity("Torino", "Italy"))

	c, err := catalog.City("milano")
	require.NoError(t, err)
	assert.Equal(t, "Milano", c.Name)

	// Lookup keys fold to slugs.
	c, err = catalog.City("Torino")
	require.NoError(t, err)
	assert.Equal(t, "Torino", c.Name)

	_, err = catalog.City("Atlantis")
	var unknown *UnknownCityError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Atlantis", unknown.Slug)

	status, _ := unknown.ServerErrorResponse()
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCatalogPutReplacesCity(t *testing.T) {
	catalog := NewCatalog()
	catalog.Put(NewCity("Milano", "Italy"))

	fresh := NewCity("Milano", "Italy")
	require.NoError(t, fresh.AddZone(testZone(t, "Area B", "Monday-Friday", "07:30", "19:30")))
	catalog.Put(fresh)

	c, err := catalog.City("milano")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ZoneCount())
	assert.Equal(t, 1, catalog.Len())
}

func TestCatalogCitiesLoadOrder(t *testing.T) {
	catalog := NewCatalog()
	catalog.Put(NewCity("Milano", "Italy"))
	catalog.Put(NewCity("Bologna", "Italy"))
	catalog.Put(NewCity("Firenze", "Italy"))

	var names []string
	for _, c := range catalog.Cities() {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"Milano", "Bologna", "Firenze"}, names)

	// Refreshing an existing city keeps its place in the order.
	catalog.Put(NewCity("Milano", "Italy"))
	assert.Equal(t, "Milano", catalog.Cities()[0].Name)
}

func TestCatalogReplace(t *testing.T) {
	catalog := NewCatalog()
	catalog.Put(NewCity("Milano", "Italy"))

	catalog.Replace([]*City{NewCity("Napoli", "Italy"), NewCity("Torino", "Italy")})

	assert.Equal(t, 2, catalog.Len())
	_, err := catalog.City("milano")
	assert.Error(t, err)

	var names []string
	for _, c := range catalog.Cities() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Napoli", "Torino"}, names)
}
