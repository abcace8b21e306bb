package graphapi

import "fmt"

// queryType is the root Query type. The erowid field is interpolated in
// only when the Plebiscite feature is configured: a disabled feature's
// query must fail GraphQL validation (unknown field), not return a
// runtime error, so the field must be genuinely absent from the schema
// rather than present-but-erroring.
//
// Field naming note: the legacy schema exposed both `substances_by_effect`
// and a `substancesByEffect` alias. graph-gophers/graphql-go dispatches a
// field to an exported Go method of the same name with no alias
// mechanism, so carrying both would mean two methods doing the same
// thing for no semantic gain; this schema keeps only the idiomatic
// camelCase name (see DESIGN.md).
const queryType = `
type Query {
	substances(query: String, effect: [String!], chemicalClass: String, psychoactiveClass: String, limit: Int = 10, offset: Int = 0): [Substance!]!
	substancesByEffect(effect: [String!], limit: Int = 50, offset: Int = 0): [Substance!]!
	effectsBySubstance(substance: String!, limit: Int = 50, offset: Int = 0): [Effect!]!
	effects: [Effect!]!
	experiences: [Experience!]!
	%s
}
`

// coreSchema is the closed type/field set of the data model and its
// resolvers, realized as a graph-gophers/graphql-go schema string (no
// codegen step, unlike gqlgen).
const coreSchema = `
schema {
	query: Query
}

type Substance {
	name: String!
	url: String!
	featured: Boolean
	class: SubstanceClass
	tolerance: SubstanceTolerance
	roas: [SubstanceRoa!]
	roa: SubstanceRoaTypes
	addictionPotential: String
	toxicity: [String!]
	crossTolerances: [String!]
	commonNames: [String!]
	systematicName: String
	uncertainInteractions: [Substance!]
	unsafeInteractions: [Substance!]
	dangerousInteractions: [Substance!]
	summary: String
	effects: [Effect!]
	images: [SubstanceImage!]
}

type SubstanceClass {
	chemical: [String!]
	psychoactive: [String!]
}

type SubstanceTolerance {
	full: String
	half: String
	zero: String
}

type SubstanceRoa {
	name: String!
	dose: SubstanceRoaDose
	duration: SubstanceRoaDuration
	bioavailability: SubstanceRoaRange
}

type SubstanceRoaTypes {
	oral: SubstanceRoa
	sublingual: SubstanceRoa
	buccal: SubstanceRoa
	insufflated: SubstanceRoa
	rectal: SubstanceRoa
	transdermal: SubstanceRoa
	subcutaneous: SubstanceRoa
	intramuscular: SubstanceRoa
	intravenous: SubstanceRoa
	smoked: SubstanceRoa
}

type SubstanceRoaDose {
	units: String
	threshold: Float
	heavy: Float
	light: SubstanceRoaRange
	common: SubstanceRoaRange
	strong: SubstanceRoaRange
}

type SubstanceRoaDuration {
	onset: SubstanceRoaDurationRange
	comeup: SubstanceRoaDurationRange
	peak: SubstanceRoaDurationRange
	offset: SubstanceRoaDurationRange
	afterglow: SubstanceRoaDurationRange
	total: SubstanceRoaDurationRange
	duration: SubstanceRoaDurationRange
}

type SubstanceRoaRange {
	min: Float
	max: Float
}

type SubstanceRoaDurationRange {
	min: Float
	max: Float
	units: String
}

type SubstanceImage {
	thumb: String!
	image: String!
}

type Effect {
	name: String!
	url: String!
	substances: [Substance!]
}

# Vestigial: kept addressable for forward compatibility, always empty.
type Experience {
	id: String!
}
`

// erowidTypes is appended only when the Plebiscite feature is configured.
const erowidTypes = `
type Erowid {
	title: String!
	text: String!
	meta: ErowidMeta!
	substanceInfo: ErowidSubstanceInfo!
}

type ErowidMeta {
	published: String!
}

type ErowidSubstanceInfo {
	substance: String!
}
`

const erowidQueryField = `erowid(substance: String, limit: Int = 50, offset: Int = 0): [Erowid!]`

// BuildSchema composes the full SDL, including the Erowid field and types
// when withErowid is true.
func BuildSchema(withErowid bool) string {
	if !withErowid {
		return fmt.Sprintf(queryType, "") + coreSchema
	}
	return fmt.Sprintf(queryType, erowidQueryField) + coreSchema + erowidTypes
}
