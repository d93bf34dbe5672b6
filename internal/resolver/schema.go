// Package resolver はGraphQLスキーマとフィールドリゾルバーを提供する。
// リゾルバーは宣言的なフィールド要求をバッキングデータソースへの呼び出しに
// 変換するだけで、レスポンスのシリアライズには関与しない。
package resolver

// Schema はGraphQLスキーマ定義。
// ミューテーションの戻り値をnullableにしているのは意図的で、
// フィールドレベルのエラーが兄弟フィールドの結果を巻き込まないようにするため。
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		launches: [Launch!]!
		launch(id: ID!): Launch
		me: User
	}

	type Mutation {
		bookTrip(launchId: ID!): TripUpdateResponse
		bookTrips(launchIds: [ID!]!): TripUpdateResponse
		cancelTrip(launchId: ID!): TripUpdateResponse
		login(email: String!): LoginPayload
	}

	type TripUpdateResponse {
		success: Boolean!
		message: String
		launches: [Launch!]
	}

	type LoginPayload {
		token: String!
		user: User!
	}

	type Launch {
		id: ID!
		site: String
		year: String
		mission: Mission
		rocket: Rocket
		isBooked: Boolean!
	}

	type Mission {
		name: String
		missionPatch(size: PatchSize = LARGE): String
	}

	enum PatchSize {
		SMALL
		LARGE
	}

	type Rocket {
		id: ID!
		name: String
		type: String
	}

	type User {
		id: ID!
		email: String!
		trips: [Launch!]!
	}
`
