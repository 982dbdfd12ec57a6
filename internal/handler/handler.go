// Package handler expose les handlers HTTP de l'API ambassador-dashboard.
//
// Les handlers décodent la requête, délèguent le calcul de conformité au
// paquet compliance et la persistance à la base, puis sérialisent la réponse
// via utils.Success / utils.Error.
package handler
