package terms

// canonicalAliases is the canonical identifier -> candidate-column table.
// Keys are normalized (namespace stripped, lowercase). Candidates are listed
// in preference order: the canonical Darwin Core spelling first, then common
// snake_case and shorthand variants seen in real occurrence exports.
var canonicalAliases = map[string][]string{
	"occurrenceid":     {"occurrenceid", "occurrence_id", "id"},
	"country":          {"country"},
	"countrycode":      {"countrycode", "country_code"},
	"stateprovince":    {"stateprovince", "state_province", "state", "province"},
	"county":           {"county"},
	"locality":         {"locality", "locality_description"},
	"continent":        {"continent"},
	"decimallatitude":  {"decimallatitude", "decimal_latitude", "latitude", "lat"},
	"decimallongitude": {"decimallongitude", "decimal_longitude", "longitude", "lon", "lng"},
	"geodeticdatum":    {"geodeticdatum", "geodetic_datum", "datum"},
	"coordinateuncertaintyinmeters": {
		"coordinateuncertaintyinmeters", "coordinate_uncertainty_in_meters",
		"coordinateuncertainty", "coordinate_uncertainty",
	},
	"minimumelevationinmeters": {"minimumelevationinmeters", "minimum_elevation_in_meters", "min_elevation"},
	"maximumelevationinmeters": {"maximumelevationinmeters", "maximum_elevation_in_meters", "max_elevation"},
	"minimumdepthinmeters":     {"minimumdepthinmeters", "minimum_depth_in_meters", "min_depth"},
	"maximumdepthinmeters":     {"maximumdepthinmeters", "maximum_depth_in_meters", "max_depth"},
	"eventdate":                {"eventdate", "event_date", "date", "collection_date"},
	"year":                     {"year"},
	"month":                    {"month"},
	"day":                      {"day"},
	"startdayofyear":           {"startdayofyear", "start_day_of_year"},
	"enddayofyear":             {"enddayofyear", "end_day_of_year"},
	"verbatimeventdate":        {"verbatimeventdate", "verbatim_event_date", "verbatim_date"},
	"dateidentified":           {"dateidentified", "date_identified"},
	"scientificname":           {"scientificname", "scientific_name", "sciname", "species"},
	"scientificnameauthorship": {"scientificnameauthorship", "scientific_name_authorship", "authorship", "author"},
	"taxonrank":                {"taxonrank", "taxon_rank", "rank"},
	"kingdom":                  {"kingdom"},
	"phylum":                   {"phylum"},
	"class":                    {"class"},
	"order":                    {"order"},
	"family":                   {"family"},
	"genus":                    {"genus"},
	"specificepithet":          {"specificepithet", "specific_epithet", "epithet"},
	"infraspecificepithet":     {"infraspecificepithet", "infraspecific_epithet"},
	"taxonid":                  {"taxonid", "taxon_id"},
	"basisofrecord":            {"basisofrecord", "basis_of_record"},
	"occurrencestatus":         {"occurrencestatus", "occurrence_status"},
	"individualcount":          {"individualcount", "individual_count", "count"},
	"sex":                      {"sex"},
	"lifestage":                {"lifestage", "life_stage"},
	"establishmentmeans":       {"establishmentmeans", "establishment_means"},
	"recordedby":               {"recordedby", "recorded_by", "collector"},
	"recordnumber":             {"recordnumber", "record_number", "collector_number"},
	"catalognumber":            {"catalognumber", "catalog_number", "catalogue_number"},
	"institutioncode":          {"institutioncode", "institution_code"},
	"collectioncode":           {"collectioncode", "collection_code"},
	"license":                  {"license", "licence"},
	"dctype":                   {"dctype", "dc_type", "type"},
	"verbatimcoordinates":      {"verbatimcoordinates", "verbatim_coordinates"},
	"verbatimlatitude":         {"verbatimlatitude", "verbatim_latitude"},
	"verbatimlongitude":        {"verbatimlongitude", "verbatim_longitude"},
	"verbatimsrs":              {"verbatimsrs", "verbatim_srs"},
	"verbatimcoordinatesystem": {"verbatimcoordinatesystem", "verbatim_coordinate_system"},
	"footprintwkt":             {"footprintwkt", "footprint_wkt"},
	"georeferencedby":          {"georeferencedby", "georeferenced_by"},
	"georeferenceddate":        {"georeferenceddate", "georeferenced_date"},
	"georeferenceprotocol":     {"georeferenceprotocol", "georeference_protocol"},
	"georeferencesources":      {"georeferencesources", "georeference_sources"},
	"georeferenceverificationstatus": {
		"georeferenceverificationstatus", "georeference_verification_status",
	},
	"highergeography":   {"highergeography", "higher_geography"},
	"highergeographyid": {"highergeographyid", "higher_geography_id"},
	"island":            {"island"},
	"islandgroup":       {"islandgroup", "island_group"},
	"waterbody":         {"waterbody", "water_body"},
	"locationid":        {"locationid", "location_id"},
	"locationremarks":   {"locationremarks", "location_remarks"},
	"vernacularname":    {"vernacularname", "vernacular_name", "common_name"},
	"namepublishedinyear": {
		"namepublishedinyear", "name_published_in_year",
	},
	"highertaxonid":        {"highertaxonid", "higher_taxon_id"},
	"higherclassification": {"higherclassification", "higher_classification"},
	"modified":             {"modified", "date_modified", "last_modified"},
	"preparations":         {"preparations", "preparation"},
	"disposition":          {"disposition"},
	"othercatalognumbers":  {"othercatalognumbers", "other_catalog_numbers"},
	"fieldnumber":          {"fieldnumber", "field_number"},
	"eventtime":            {"eventtime", "event_time"},
	"habitat":              {"habitat"},
	"samplingprotocol":     {"samplingprotocol", "sampling_protocol"},
	"relationshipofresource": {
		"relationshipofresource", "relationship_of_resource",
	},
	"typestatus":             {"typestatus", "type_status"},
	"identifiedby":           {"identifiedby", "identified_by", "determiner"},
	"identificationremarks":  {"identificationremarks", "identification_remarks"},
	"occurrenceremarks":      {"occurrenceremarks", "occurrence_remarks", "remarks", "notes"},
	"pathway":                {"pathway"},
	"degreeofestablishment":  {"degreeofestablishment", "degree_of_establishment"},
	"coordinateprecision":    {"coordinateprecision", "coordinate_precision"},
	"pointradiusspatialfit":  {"pointradiusspatialfit", "point_radius_spatial_fit"},
	"verticaldatum":          {"verticaldatum", "vertical_datum"},
	"verbatimelevation":      {"verbatimelevation", "verbatim_elevation"},
	"verbatimdepth":          {"verbatimdepth", "verbatim_depth"},
	"namepublishedin":        {"namepublishedin", "name_published_in"},
	"nomenclaturalcode":      {"nomenclaturalcode", "nomenclatural_code"},
	"nomenclaturalstatus":    {"nomenclaturalstatus", "nomenclatural_status"},
	"subgenus":               {"subgenus"},
	"acceptednameusage":      {"acceptednameusage", "accepted_name_usage"},
	"acceptednameusageid":    {"acceptednameusageid", "accepted_name_usage_id"},
	"originalnameusage":      {"originalnameusage", "original_name_usage"},
	"parentnameusage":        {"parentnameusage", "parent_name_usage"},
	"scientificnameid":       {"scientificnameid", "scientific_name_id"},
	"taxonconceptid":         {"taxonconceptid", "taxon_concept_id"},
	"datasetname":            {"datasetname", "dataset_name"},
	"datasetid":              {"datasetid", "dataset_id"},
	"informationwithheld":    {"informationwithheld", "information_withheld"},
	"datageneralizations":    {"datageneralizations", "data_generalizations"},
	"dynamicproperties":      {"dynamicproperties", "dynamic_properties"},
	"associatedtaxa":         {"associatedtaxa", "associated_taxa"},
	"associatedsequences":    {"associatedsequences", "associated_sequences"},
	"associatedreferences":   {"associatedreferences", "associated_references"},
	"associatedoccurrences":  {"associatedoccurrences", "associated_occurrences"},
	"associatedmedia":        {"associatedmedia", "associated_media"},
	"reproductivecondition":  {"reproductivecondition", "reproductive_condition"},
	"behavior":               {"behavior", "behaviour"},
	"organismquantity":       {"organismquantity", "organism_quantity"},
	"organismquantitytype":   {"organismquantitytype", "organism_quantity_type"},
	"samplesizevalue":        {"samplesizevalue", "sample_size_value"},
	"samplesizeunit":         {"samplesizeunit", "sample_size_unit"},
	"eventid":                {"eventid", "event_id"},
	"parenteventid":          {"parenteventid", "parent_event_id"},
	"fieldnotes":             {"fieldnotes", "field_notes"},
	"eventremarks":           {"eventremarks", "event_remarks"},
	"identificationid":       {"identificationid", "identification_id"},
	"identificationqualifier": {
		"identificationqualifier", "identification_qualifier", "qualifier",
	},
	"identificationverificationstatus": {
		"identificationverificationstatus", "identification_verification_status",
	},
	"identificationreferences": {
		"identificationreferences", "identification_references",
	},
}
